package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"recipe-recommender/internal/core/catalog"
)

// PromptIngredients 逐行讀取食材直到空行或輸入結束；一行可含多個以逗號分隔的食材
func PromptIngredients(in io.Reader, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, "보유 재료를 입력하세요 (빈 줄로 종료):")

	var ingredients []string
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		ingredients = append(ingredients, catalog.SplitIngredients(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return ingredients, nil
}
