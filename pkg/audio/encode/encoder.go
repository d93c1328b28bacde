// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for turning quantized samples into device bytes
package encode

// Encoder encodes quantized int32 samples into a device byte layout
type Encoder interface {
	// Encode converts samples to encoded audio data
	Encode(samples []int32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
