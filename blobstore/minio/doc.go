// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and any other S3-compatible storage (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "datasets/")
//	m, err := ds.Save(ctx, "corpus", datapack.WithMaxSize(1<<20), datapack.WithSaveStore(store))
package minio
