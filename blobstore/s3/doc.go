// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "datasets/")
//	ds, err := datapack.Load(ctx, "corpus", datapack.WithStore(store))
//
// Reads stream the object body; writes go through the multipart upload
// manager so large chunks never have to be buffered.
package s3
