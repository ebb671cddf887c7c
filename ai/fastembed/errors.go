package fastembed

import "errors"

var (
	// ErrNotAvailable is returned when the binary was built without cgo.
	ErrNotAvailable = errors.New("fastembed: not available (binary built without cgo support, use the openai provider instead)")

	// ErrUnsupportedModel indicates a model name with no known ONNX export.
	ErrUnsupportedModel = errors.New("fastembed: unsupported model")

	// ErrProviderClosed indicates use after Close.
	ErrProviderClosed = errors.New("fastembed: provider is closed")
)

// defaultMaxLength is the maximum sequence length used when none is configured.
const defaultMaxLength = 512

// batchSize is the number of texts embedded per ONNX run.
const batchSize = 256
