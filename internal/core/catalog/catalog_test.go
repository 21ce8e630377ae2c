package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeXLSX(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &r))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

const recipesCSV = "이름,재료,조리시간(분),설명\n" +
	"김치찌개,\"김치,두부,돼지고기,양파\",20,김치를 볶고 물을 붓는다\n" +
	"계란말이,\"계란, 파 ,,소금\",10,계란을 풀어 부친다\n"

const shelfCSV = "재료명,권장유통기한(일)\n김치,2\n두부,10\n"

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", recipesCSV)
	sp := writeFile(t, dir, "shelf.csv", shelfCSV)

	cat, err := Load(rp, sp, Options{})
	require.NoError(t, err)

	require.Len(t, cat.Recipes, 2)
	assert.Equal(t, Recipe{
		Name:            "김치찌개",
		Ingredients:     []string{"김치", "두부", "돼지고기", "양파"},
		CookTimeMinutes: 20,
		Description:     "김치를 볶고 물을 붓는다",
	}, cat.Recipes[0])
	assert.Equal(t, []string{"계란", "파", "소금"}, cat.Recipes[1].Ingredients)

	assert.Equal(t, ShelfLife{Days: 2, Known: true}, cat.ShelfLife.Lookup("김치"))
	assert.Equal(t, ShelfLife{}, cat.ShelfLife.Lookup("양파"))
	assert.Equal(t, 2, cat.ShelfLife.Len())
}

func TestLoad_EnglishHeadersAndBOM(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", "\ufeffname,ingredients,cook_time_minutes,description\nKimchi Stew,\"kimchi,tofu,pork,onion\",20,stew\n")
	sp := writeFile(t, dir, "shelf.csv", "ingredient,shelf_life_days\nkimchi,2\n")

	cat, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	require.Len(t, cat.Recipes, 1)
	assert.Equal(t, "Kimchi Stew", cat.Recipes[0].Name)
}

func TestLoad_XLSX(t *testing.T) {
	dir := t.TempDir()
	rp := writeXLSX(t, dir, "recipes.xlsx", [][]interface{}{
		{"이름", "재료", "조리시간(분)", "설명"},
		{"된장찌개", "된장,두부,애호박", 25, "된장을 푼다"},
	})
	sp := writeXLSX(t, dir, "shelf.xlsx", [][]interface{}{
		{"재료명", "권장유통기한(일)"},
		{"두부", 3},
	})

	cat, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	require.Len(t, cat.Recipes, 1)
	assert.Equal(t, 25.0, cat.Recipes[0].CookTimeMinutes)
	assert.Equal(t, []string{"된장", "두부", "애호박"}, cat.Recipes[0].Ingredients)
	assert.True(t, cat.ShelfLife.Lookup("두부").NearExpiry(3))
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", "이름,재료,조리시간(분),설명\n"+
		",\"김치\",10,no name\n"+
		"라면,\"라면,물\",abc,bad time\n"+
		"볶음밥,\"밥,계란\",-5,negative\n"+
		",,,\n"+
		"비빔밥,\"밥,나물\",15,ok\n")
	sp := writeFile(t, dir, "shelf.csv", "재료명,권장유통기한(일)\n밥,\n,3\n나물,2\n나물,4\n")

	cat, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	require.Len(t, cat.Recipes, 1)
	assert.Equal(t, "비빔밥", cat.Recipes[0].Name)
	assert.Equal(t, 5, cat.Skipped)

	assert.False(t, cat.ShelfLife.Lookup("밥").Known)
	assert.Equal(t, 4.0, cat.ShelfLife.Lookup("나물").Days)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "shelf.csv", shelfCSV)
	recipes := writeFile(t, dir, "recipes.csv", recipesCSV)

	tests := []struct {
		name      string
		recipes   string
		shelf     string
		missingCo bool
	}{
		{"missing recipe file", filepath.Join(dir, "nope.csv"), good, false},
		{"missing shelf file", recipes, filepath.Join(dir, "nope.csv"), false},
		{"unsupported format", writeFile(t, dir, "recipes.json", "[]"), good, false},
		{"empty source", writeFile(t, dir, "empty.csv", ""), good, false},
		{"missing time column", writeFile(t, dir, "notime.csv", "이름,재료,설명\n김밥,밥,말기\n"), good, true},
		{"missing days column", recipes, writeFile(t, dir, "nodays.csv", "재료명\n김치\n"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Load(tt.recipes, tt.shelf, Options{})
			require.Error(t, err)
			assert.Nil(t, cat)
			assert.True(t, IsLoadError(err))
			assert.Equal(t, tt.missingCo, errors.Is(err, ErrMissingColumn))
		})
	}
}

func TestLoader_Memoizes(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", recipesCSV)
	sp := writeFile(t, dir, "shelf.csv", shelfCSV)

	loader := NewLoader(Options{})
	first, err := loader.Load(rp, sp)
	require.NoError(t, err)

	// 來源被刪除後仍回傳快取結果
	require.NoError(t, os.Remove(rp))

	second, err := loader.Load(rp, sp)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoader_ConcurrentFirstLoad(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", recipesCSV)
	sp := writeFile(t, dir, "shelf.csv", shelfCSV)

	loader := NewLoader(Options{})
	var wg sync.WaitGroup
	results := make([]*Catalog, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cat, err := loader.Load(rp, sp)
			assert.NoError(t, err)
			results[i] = cat
		}(i)
	}
	wg.Wait()

	for _, cat := range results[1:] {
		assert.Same(t, results[0], cat)
	}
}

func TestLoader_FailureNotCached(t *testing.T) {
	dir := t.TempDir()
	rp := filepath.Join(dir, "recipes.csv")
	sp := writeFile(t, dir, "shelf.csv", shelfCSV)

	loader := NewLoader(Options{})
	_, err := loader.Load(rp, sp)
	require.Error(t, err)

	writeFile(t, dir, "recipes.csv", recipesCSV)
	cat, err := loader.Load(rp, sp)
	require.NoError(t, err)
	assert.Len(t, cat.Recipes, 2)
}

func TestShelfLife_NearExpiry(t *testing.T) {
	assert.True(t, ShelfLife{Days: 3, Known: true}.NearExpiry(3))
	assert.True(t, ShelfLife{Days: 0, Known: true}.NearExpiry(3))
	assert.False(t, ShelfLife{Days: 3.5, Known: true}.NearExpiry(3))
	assert.False(t, ShelfLife{}.NearExpiry(3))
}

func TestLoad_FingerprintFollowsContent(t *testing.T) {
	dir := t.TempDir()
	rp := writeFile(t, dir, "recipes.csv", recipesCSV)
	sp := writeFile(t, dir, "shelf.csv", shelfCSV)

	first, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, first.Fingerprint)

	again, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint, again.Fingerprint)

	// 同一路徑、內容改變
	writeFile(t, dir, "recipes.csv", recipesCSV+"두부조림,\"두부,간장\",15,졸인다\n")
	changedRecipes, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Source, changedRecipes.Source)
	assert.NotEqual(t, first.Fingerprint, changedRecipes.Fingerprint)

	writeFile(t, dir, "recipes.csv", recipesCSV)
	writeFile(t, dir, "shelf.csv", "재료명,권장유통기한(일)\n김치,2\n두부,3\n")
	changedShelf, err := Load(rp, sp, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, changedShelf.Fingerprint)
}

func TestComputeFingerprint_FieldBoundaries(t *testing.T) {
	a := []Recipe{{Name: "ab", Ingredients: []string{"c"}}}
	b := []Recipe{{Name: "a", Ingredients: []string{"bc"}}}
	empty := NewShelfLifeTable(nil)

	assert.NotEqual(t, ComputeFingerprint(a, empty), ComputeFingerprint(b, empty))
	assert.Equal(t, ComputeFingerprint(a, empty), ComputeFingerprint(a, NewShelfLifeTable(map[string]float64{})))
}
