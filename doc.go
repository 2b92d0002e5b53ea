// Package datapack stores datasets as size-bounded chunk files plus a small
// JSON manifest, and streams them back from the local filesystem, an HTTP
// endpoint or any BlobStore.
//
// # Layout
//
// A package-form dataset at location "corpus" with extension "jsonl" is
// stored as:
//
//	corpus/0.jsonl
//	corpus/1.jsonl
//	...
//	corpus/manifest.json   {"description":"...","count":2,"type":"jsonl","is_binary":false}
//
// The single-file form is just corpus.jsonl. Readers try chunk 0 first and
// fall back to the single file.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	ds := datapack.FromString("a\nb\nc\n", "txt")
//	m, _ := ds.Save(ctx, "./data/corpus", datapack.WithMaxSize(64<<10), datapack.WithDescription("demo"))
//
//	ds, _ = datapack.Load(ctx, "./data/corpus")
//	for line, err := range ds.Lines(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(line)
//	}
//
// Remote datasets are read with one streaming GET per chunk:
//
//	hdr := http.Header{"Authorization": []string{"Bearer " + token}}
//	ds, _ := datapack.Load(ctx, "https://example.com/data/corpus", datapack.WithHeaders(hdr))
//
// # Content Kinds
//
// Text content is split between lines and never inside one; every text chunk
// is at most MaxSize bytes unless a single line is longer. Binary content is
// cut into windows of exactly MaxSize bytes. Lines and Batches fail with
// ErrUnsupportedOperation on binary content.
//
// # Streaming
//
// Every sequence is lazy and pull-based. Breaking out of a range loop closes
// the chunk that was open. Content, Text and Unzip read the whole dataset
// into memory.
package datapack
