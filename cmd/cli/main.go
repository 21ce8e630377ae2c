package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"recipe-recommender/internal/client"
	"recipe-recommender/internal/core/catalog"
	"recipe-recommender/internal/output"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	ingredients string
	cookTime    float64
	timeout     time.Duration
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "recipe",
	Short: "한식 레시피 추천 CLI",
	Long: `로컬 추천 서버에 보유 재료와 조리 가능 시간을 보내 레시피를 추천받습니다.

예시:
  recipe --ingredients "김치,두부,계란,양파" --time 20
  recipe --time 30           # 재료를 한 줄씩 입력
  recipe health`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecommend,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "서버 상태 확인",
	RunE:  runHealth,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("RECIPE_SERVER", "http://localhost:8080"), "추천 서버 주소")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "요청 제한 시간")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "색상 출력 끄기")

	rootCmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "보유 재료 (쉼표로 구분)")
	rootCmd.Flags().Float64VarP(&cookTime, "time", "t", 20, "조리 가능 시간 (분)")

	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		output.NewPrinter(!noColor).Error("%v", err)
		os.Exit(1)
	}
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if cookTime < 0 {
		return fmt.Errorf("--time must not be negative")
	}

	var have []string
	if cmd.Flags().Changed("ingredients") {
		have = catalog.SplitIngredients(ingredients)
	} else {
		var err error
		have, err = output.PromptIngredients(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := client.NewClient(serverURL, timeout).Recommend(ctx, have, cookTime)
	if err != nil {
		return err
	}

	output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorsEnabled()).Result(result)
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	status, err := client.NewClient(serverURL, timeout).Health(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status: %s (version %s)\n", status.Status, status.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "recipes: %d, shelf-life entries: %d, skipped rows: %d\n",
		status.Catalog.Recipes, status.Catalog.ShelfLifeEntries, status.Catalog.SkippedRows)
	return nil
}

func colorsEnabled() bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
