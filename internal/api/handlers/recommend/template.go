package recommend

import (
	"html/template"
	"strconv"

	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/pkg/common"
)

// TemplateName 表單頁面的模板名稱
const TemplateName = "index"

// Page 表單頁面資料
type Page struct {
	Ingredients string
	Minutes     int
	MinMinutes  int
	MaxMinutes  int
	Error       string
	Result      *recipe.Result
}

// Templates 解析表單頁面模板
func Templates() (*template.Template, error) {
	return template.New(TemplateName).Funcs(template.FuncMap{
		"join":    common.StringSliceToString,
		"minutes": func(m float64) string { return strconv.FormatFloat(m, 'f', -1, 64) },
	}).Parse(indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>🍳 한식 레시피 추천기</title>
</head>
<body>
<h1>🍳 한식 레시피 추천기</h1>
<p>보유한 재료와 조리 시간, 유통기한을 고려해 레시피를 추천합니다.</p>
<form method="post" action="/">
  <label for="ingredients">보유 재료 (쉼표로 구분)</label><br>
  <textarea id="ingredients" name="ingredients" rows="3" cols="60">{{.Ingredients}}</textarea><br>
  <label for="cook_time">조리 가능 시간 (분)</label>
  <input type="range" id="cook_time" name="cook_time" min="{{.MinMinutes}}" max="{{.MaxMinutes}}" value="{{.Minutes}}"
    oninput="this.nextElementSibling.value=this.value">
  <output>{{.Minutes}}</output><br>
  <button type="submit">추천 받기</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{with .Result}}
{{if .NoResults}}<p class="warning">⚠ {{.Message}}</p>{{else}}
<h2>추천 결과</h2>
{{range .Recommendations}}
<details open>
  <summary>[{{.Rank}}] {{.Name}} (⏱ {{minutes .CookTimeMinutes}}분, 일치율 {{.MatchPercent}}%)</summary>
  <p>✅ 보유 재료: {{join .Matched}}</p>
  {{if .Missing}}<p>❌ 부족 재료: {{join .Missing}}</p>{{end}}
  <p>⏰ 유통기한 임박 재료 수: {{.NearExpiryCount}}</p>
  <p>📖 조리법: {{.Description}}</p>
</details>
{{end}}
{{end}}
{{end}}
</body>
</html>
`
