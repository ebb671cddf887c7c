// Package fastembed provides a local embedding provider backed by ONNX models
// through fastembed-go.
//
// The model runs in-process, so the provider holds native resources that
// must be released with Close. Builds without cgo get a stub whose
// constructor returns ErrNotAvailable.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithProvider(ai.ProviderFastEmbed),
//	    ai.WithEmbeddingModel("BAAI/bge-small-en-v1.5"),
//	    ai.WithCacheDir("/var/cache/promptclass/models"),
//	)
//	provider, err := fastembed.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
package fastembed
