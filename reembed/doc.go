// Package reembed warms the keyword-vector cache for a configured vocabulary.
//
// Keywords are embedded in batches with retry and exponential backoff, and
// the resulting vectors are written to a storage.VectorCache under the
// provider's model name. Switching embedding models therefore only requires
// a fresh Run; vectors of other models are left alone.
package reembed
