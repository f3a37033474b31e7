// Package fetcher は外部データソース呼び出しをリトライ付きでラップします。
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"starpupil_backend/internal/feature/stocks/domain/entity"
	"starpupil_backend/internal/platform/externalapi/aktools"
)

// Config はフェッチャーのリトライ動作を制御します。
// プロセス起動時に一度だけ構築し、コンストラクタへ注入します。
type Config struct {
	MaxRetries int           // 1回の取得あたりの最大試行回数
	RetryDelay time.Duration // 試行間の固定待機時間
}

// LoadConfig は環境変数からフェッチャー設定を読み込みます。
// 未設定の場合は最大3回・2秒間隔のデフォルトを使用します。
func LoadConfig() Config {
	cfg := Config{MaxRetries: 3, RetryDelay: 2 * time.Second}
	if v := os.Getenv("FETCH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("FETCH_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.RetryDelay = d
		}
	}
	return cfg
}

// ProviderClient は外部データソースのクライアントを抽象化します。
// Goの慣例に従い、インターフェースは利用者（fetcher）側で定義します。
type ProviderClient interface {
	StockInfoCodeName(ctx context.Context, market entity.MarketType) ([]aktools.CodeName, error)
	StockZhAHist(ctx context.Context, symbol, startDate, endDate, adjust string) ([]aktools.Row, error)
	StockZhASpot(ctx context.Context) ([]aktools.Row, error)
	StockFinancialAnalysisIndicator(ctx context.Context, symbol, startYear string) ([]aktools.Row, error)
}

// Fetcher はProviderClientの各操作を固定間隔・回数上限付きのリトライで包みます。
// エラー種別は区別せず一律にリトライします。日足・行情・財務指標の取得は
// リトライを使い切ると空の結果に縮退し、銘柄リストの取得だけは
// エラーをそのまま呼び出し元へ返します（空のユニバースは安全な代替に
// ならないため）。
type Fetcher struct {
	client     ProviderClient
	maxRetries int
	retryDelay time.Duration
}

// New は指定されたクライアントと設定でFetcherの新しいインスタンスを生成します。
func New(client ProviderClient, cfg Config) *Fetcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Fetcher{client: client, maxRetries: cfg.MaxRetries, retryDelay: cfg.RetryDelay}
}

// InferMarket は銘柄コードの先頭数字から市場区分を推定します。
// "0"/"3"始まり→深圳、"6"始まり→上海、"8"始まり→北京、それ以外は深圳。
// 既存データとの互換性のため、この規則は変更してはいけません。
func InferMarket(symbol string) entity.MarketType {
	switch {
	case strings.HasPrefix(symbol, "0"), strings.HasPrefix(symbol, "3"):
		return entity.MarketSZ
	case strings.HasPrefix(symbol, "6"):
		return entity.MarketSH
	case strings.HasPrefix(symbol, "8"):
		return entity.MarketBJ
	default:
		return entity.MarketSZ
	}
}

// SymbolList は指定市場の銘柄ユニバースを取得します。
// リトライを使い切った場合は最後のエラーを返します。
func (f *Fetcher) SymbolList(ctx context.Context, market entity.MarketType) ([]aktools.CodeName, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		rows, err := f.client.StockInfoCodeName(ctx, market)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		slog.Error("failed to fetch symbol list", "market", market, "attempt", attempt, "error", err)
		f.sleepBeforeRetry(attempt)
	}
	return nil, fmt.Errorf("fetch symbol list for %s: %w", market, lastErr)
}

// DailyBars は指定銘柄の日足データを取得します。
// リトライを使い切った場合はエラーにせず、空の結果を返してログに残します。
func (f *Fetcher) DailyBars(ctx context.Context, symbol, startDate, endDate, adjust string) ([]aktools.Row, error) {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		rows, err := f.client.StockZhAHist(ctx, symbol, startDate, endDate, adjust)
		if err == nil {
			if len(rows) == 0 {
				slog.Warn("no daily bars returned", "symbol", symbol, "start", startDate, "end", endDate)
			}
			return rows, nil
		}
		slog.Error("failed to fetch daily bars", "symbol", symbol, "attempt", attempt, "error", err)
		f.sleepBeforeRetry(attempt)
	}
	return []aktools.Row{}, nil
}

// RealtimeQuote は指定銘柄のリアルタイム行情を取得します。
// 上流は全銘柄のテーブルを返すため、ここで対象銘柄に絞り込みます。
// リトライを使い切った場合は空の結果に縮退します。
func (f *Fetcher) RealtimeQuote(ctx context.Context, symbols []string) ([]aktools.Row, error) {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		rows, err := f.client.StockZhASpot(ctx)
		if err == nil {
			if len(symbols) == 0 {
				return rows, nil
			}
			want := make(map[string]struct{}, len(symbols))
			for _, s := range symbols {
				want[s] = struct{}{}
			}
			out := make([]aktools.Row, 0, len(symbols))
			for _, r := range rows {
				if code, ok := r["代码"].(string); ok {
					if _, hit := want[code]; hit {
						out = append(out, r)
					}
				}
			}
			return out, nil
		}
		slog.Error("failed to fetch realtime quote", "attempt", attempt, "error", err)
		f.sleepBeforeRetry(attempt)
	}
	return []aktools.Row{}, nil
}

// FinancialIndicators は指定銘柄の財務指標テーブルを取得します。
// リトライを使い切った場合は空の結果に縮退します。
func (f *Fetcher) FinancialIndicators(ctx context.Context, symbol, startYear string) ([]aktools.Row, error) {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		rows, err := f.client.StockFinancialAnalysisIndicator(ctx, symbol, startYear)
		if err == nil {
			return rows, nil
		}
		slog.Error("failed to fetch financial indicators", "symbol", symbol, "attempt", attempt, "error", err)
		f.sleepBeforeRetry(attempt)
	}
	return []aktools.Row{}, nil
}

// sleepBeforeRetry は最終試行でない場合に固定の待機時間をとります。
func (f *Fetcher) sleepBeforeRetry(attempt int) {
	if attempt < f.maxRetries && f.retryDelay > 0 {
		time.Sleep(f.retryDelay)
	}
}
