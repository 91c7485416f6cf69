package quiz

// CollectionComprehensive is the sentinel id for an unfiltered quiz drawn from
// the whole question bank.
const CollectionComprehensive = "all-comprehensive"

// Catalog is the static enumeration of selectable quiz collections. Every
// non-sentinel id parses under the sampler's level<N>-<category> scheme.
type Catalog struct {
	collections []Collection
}

// NewCatalog builds the fixed collection catalog.
func NewCatalog(comprehensiveSize, collectionSize int) *Catalog {
	return &Catalog{collections: []Collection{
		{ID: CollectionComprehensive, Title: "전체 종합 퀴즈", Size: comprehensiveSize},
		{ID: "level1-all", Title: "입문 종합", Difficulty: 1, Size: collectionSize},
		{ID: "level1-economy", Title: "입문 경제", Difficulty: 1, Category: "경제", Size: collectionSize},
		{ID: "level1-finance", Title: "입문 금융", Difficulty: 1, Category: "금융", Size: collectionSize},
		{ID: "level2-all", Title: "중급 종합", Difficulty: 2, Size: collectionSize},
		{ID: "level2-economy", Title: "중급 경제", Difficulty: 2, Category: "경제", Size: collectionSize},
		{ID: "level2-finance", Title: "중급 금융", Difficulty: 2, Category: "금융", Size: collectionSize},
		{ID: "level2-macro", Title: "중급 거시경제", Difficulty: 2, Category: "거시경제", Size: collectionSize},
		{ID: "level3-all", Title: "고급 종합", Difficulty: 3, Size: collectionSize},
		{ID: "level3-macro", Title: "고급 거시경제", Difficulty: 3, Category: "거시경제", Size: collectionSize},
		{ID: "level3-invest", Title: "고급 투자분석", Difficulty: 3, Category: "투자분석", Size: collectionSize},
	}}
}

// List returns the catalog in its fixed display order.
func (c *Catalog) List() []Collection {
	out := make([]Collection, len(c.collections))
	copy(out, c.collections)
	return out
}
