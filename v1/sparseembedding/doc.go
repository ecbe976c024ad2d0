// Package sparseembedding provides an in-process BM25 sparse embedder.
//
// # Overview
//
// BM25 implements embedding.Embedder with Mode() == vectordb.ModeSparse.
// Text is lowercased, split on anything that is not a letter or digit,
// stripped of stopwords and stemmed with a Snowball stemmer. Each stem is
// hashed to a sparse index (absolute value of the signed murmur3 hash), so
// no vocabulary is stored.
//
// # Corpus vs Query
//
// The two paths weight terms differently and must not be mixed:
//
//   - EmbedCorpus: tf*(k1+1) / (tf + k1*(1-b+b*docLen/avgLen))
//   - EmbedQuery: 1.0 for every distinct term
//
// Inverse document frequency is not computed here. Collections must enable
// the IDF modifier on their sparse vector so the store applies it at query
// time.
//
// # Configuration
//
//	cfg := sparseembedding.NewConfig() // SPARSE_MODEL, SPARSE_LANGUAGE
//	model, err := sparseembedding.NewBM25(cfg)
//
// Load fails with embedding.ErrModelUnavailable for any model name other than
// "Qdrant/bm25" or a language without a Snowball stemmer.
//
// # Sparse Embedding Format
//
// Indices are unique and sorted ascending; Values has the same length.
// Text made only of stopwords embeds to an empty sparse vector.
//
// # Thread Safety
//
// A loaded BM25 holds no mutable state and is safe for concurrent use.
package sparseembedding
