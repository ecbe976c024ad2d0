package sparseembedding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/spaolacci/murmur3"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// BM25 is an in-process sparse embedder. Documents get BM25 term-frequency
// weights; queries get weight 1 per distinct term. The store supplies IDF.
type BM25 struct {
	cfg Config

	mu        sync.Mutex
	loaded    bool
	stopwords map[string]struct{}
}

var _ embedding.Embedder = (*BM25)(nil)

// NewBM25 returns an unloaded model. A zero-valued config field falls back
// to DefaultConfig.
func NewBM25(cfg *Config) (*BM25, error) {
	c := *DefaultConfig()
	if cfg != nil {
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.Language != "" {
			c.Language = cfg.Language
		}
		if cfg.K1 != 0 {
			c.K1 = cfg.K1
		}
		if cfg.B != 0 {
			c.B = cfg.B
		}
		if cfg.AvgLen != 0 {
			c.AvgLen = cfg.AvgLen
		}
		if cfg.TokenMaxLength != 0 {
			c.TokenMaxLength = cfg.TokenMaxLength
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &BM25{cfg: c}, nil
}

func (m *BM25) Mode() vectordb.Mode { return vectordb.ModeSparse }
func (m *BM25) Model() string       { return m.cfg.Model }
func (m *BM25) Dimension() int      { return 0 }

// Load checks the model name and that a stemmer exists for the language.
func (m *BM25) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.cfg.Model != ModelBM25 {
		return fmt.Errorf("%w: unknown sparse model %q", embedding.ErrModelUnavailable, m.cfg.Model)
	}
	lang := strings.ToLower(m.cfg.Language)
	if _, err := snowball.Stem("running", lang, true); err != nil {
		return fmt.Errorf("%w: bm25 language %q: %w", embedding.ErrModelUnavailable, m.cfg.Language, err)
	}

	m.cfg.Language = lang
	m.stopwords = stopwordsFor(lang)
	m.loaded = true
	return nil
}

// EmbedCorpus weights each term by saturated term frequency normalised by
// document length.
func (m *BM25) EmbedCorpus(ctx context.Context, texts []string) ([]vectordb.Vector, error) {
	if err := m.Load(ctx); err != nil {
		return nil, err
	}

	out := make([]vectordb.Vector, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = m.corpusVector(m.terms(text))
	}
	return out, nil
}

// EmbedQuery gives every distinct term weight 1.
func (m *BM25) EmbedQuery(ctx context.Context, text string) (vectordb.Vector, error) {
	if err := m.Load(ctx); err != nil {
		return vectordb.Vector{}, err
	}

	seen := make(map[uint32]struct{})
	for _, term := range m.terms(text) {
		seen[tokenIndex(term)] = struct{}{}
	}

	indices := make([]uint32, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float32, len(indices))
	for i := range values {
		values[i] = 1
	}
	return vectordb.NewSparseVector(indices, values), nil
}

func (m *BM25) corpusVector(terms []string) vectordb.Vector {
	tf := make(map[uint32]float64)
	for _, term := range terms {
		tf[tokenIndex(term)]++
	}

	docLen := float64(len(terms))
	k, b := m.cfg.K1, m.cfg.B
	norm := k * (1 - b + b*docLen/m.cfg.AvgLen)

	indices := make([]uint32, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float32, len(indices))
	for i, idx := range indices {
		f := tf[idx]
		values[i] = float32(f * (k + 1) / (f + norm))
	}
	return vectordb.NewSparseVector(indices, values)
}

// terms lowercases text, splits on anything that is not a letter or digit,
// drops stopwords and over-long tokens, and stems what remains.
func (m *BM25) terms(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) > m.cfg.TokenMaxLength {
			continue
		}
		if _, stop := m.stopwords[tok]; stop {
			continue
		}
		stem, err := snowball.Stem(tok, m.cfg.Language, true)
		if err != nil || stem == "" {
			stem = tok
		}
		out = append(out, stem)
	}
	return out
}

// tokenIndex hashes a term to its sparse index: the absolute value of the
// signed 32-bit murmur3 hash.
func tokenIndex(term string) uint32 {
	h := int64(int32(murmur3.Sum32([]byte(term))))
	if h < 0 {
		h = -h
	}
	return uint32(h)
}
