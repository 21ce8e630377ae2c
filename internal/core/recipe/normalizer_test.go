package recipe

import (
	"testing"

	"recipe-recommender/internal/core/catalog"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	table := catalog.NewShelfLifeTable(map[string]float64{"김치": 2, "두부": 10})

	tests := []struct {
		name string
		raw  string
		want []UserIngredient
	}{
		{
			name: "trims and resolves shelf life",
			raw:  " 김치 , 두부,양파 ",
			want: []UserIngredient{
				{Name: "김치", ShelfLife: catalog.ShelfLife{Days: 2, Known: true}},
				{Name: "두부", ShelfLife: catalog.ShelfLife{Days: 10, Known: true}},
				{Name: "양파"},
			},
		},
		{
			name: "drops empty tokens and duplicates",
			raw:  "김치,,  ,김치,두부,",
			want: []UserIngredient{
				{Name: "김치", ShelfLife: catalog.ShelfLife{Days: 2, Known: true}},
				{Name: "두부", ShelfLife: catalog.ShelfLife{Days: 10, Known: true}},
			},
		},
		{name: "empty input", raw: "", want: []UserIngredient{}},
		{name: "whitespace only", raw: "  ,\t, ", want: []UserIngredient{}},
		{
			name: "case sensitive",
			raw:  "Tofu,tofu",
			want: []UserIngredient{{Name: "Tofu"}, {Name: "tofu"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, table))
		})
	}
}

func TestNormalizeList(t *testing.T) {
	table := catalog.NewShelfLifeTable(nil)
	got := NormalizeList([]string{"계란", " 계란 ", "", "파"}, table)
	assert.Equal(t, []UserIngredient{{Name: "계란"}, {Name: "파"}}, got)
}
