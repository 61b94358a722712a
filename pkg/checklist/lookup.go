package checklist

// CategoryMeta is display metadata for a category.
type CategoryMeta struct {
	Icon  string `json:"icon"`
	Short string `json:"short"`
}

// FallbackMeta is returned for ids outside the built-in catalog.
var FallbackMeta = CategoryMeta{Icon: "clipboard-list", Short: "Other"}

var categoryMeta = map[string]CategoryMeta{
	CategoryTechnicalSEO:  {Icon: "settings", Short: "SEO"},
	CategoryContent:       {Icon: "file-text", Short: "Content"},
	CategoryAnalytics:     {Icon: "bar-chart", Short: "Analytics"},
	CategoryLegal:         {Icon: "shield", Short: "Legal"},
	CategorySocial:        {Icon: "share-2", Short: "Social"},
	CategoryAccessibility: {Icon: "accessibility", Short: "A11y"},
	CategoryInternational: {Icon: "globe", Short: "i18n"},
}

// Lookup returns display metadata for a category id, or FallbackMeta.
func Lookup(categoryID string) CategoryMeta {
	if m, ok := categoryMeta[categoryID]; ok {
		return m
	}
	return FallbackMeta
}
