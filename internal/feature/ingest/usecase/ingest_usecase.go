// Package usecase はデータ取得パイプラインのオーケストレーションを実装します。
// 外部データソースからの取得・カラム名の正規化・データベースへの突合保存を
// 1つのユースケースにまとめます。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	indicatorentity "starpupil_backend/internal/feature/indicators/domain/entity"
	"starpupil_backend/internal/feature/ingest/fetcher"
	"starpupil_backend/internal/feature/ingest/mapper"
	priceentity "starpupil_backend/internal/feature/prices/domain/entity"
	stockentity "starpupil_backend/internal/feature/stocks/domain/entity"
	"starpupil_backend/internal/platform/externalapi/aktools"
	"starpupil_backend/internal/shared/ratelimiter"
)

const (
	// defaultStartDate は開始日未指定時の日足取得開始日です。
	defaultStartDate = "20200101"
	// defaultAdjust は日足取得時の復権方式（前復権）です。
	defaultAdjust = "qfq"
	// bootstrapWindowDays は初期投入時に取得する日足の日数です。
	bootstrapWindowDays = 30
	// requestDateLayout は上流APIが要求する日付形式です。
	requestDateLayout = "20060102"
)

// Fetcher は外部データソースからの取得層を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Fetcher interface {
	SymbolList(ctx context.Context, market stockentity.MarketType) ([]aktools.CodeName, error)
	DailyBars(ctx context.Context, symbol, startDate, endDate, adjust string) ([]aktools.Row, error)
	RealtimeQuote(ctx context.Context, symbols []string) ([]aktools.Row, error)
	FinancialIndicators(ctx context.Context, symbol, startYear string) ([]aktools.Row, error)
}

// StockRepository は銘柄マスタの永続化を抽象化します。
type StockRepository interface {
	Save(ctx context.Context, stock *stockentity.Stock) (bool, error)
	UpdateQuote(ctx context.Context, symbol string, price, marketCap, peRatio, pbRatio *float64) error
	Count(ctx context.Context) (int64, error)
}

// PriceRepository は日足データの永続化を抽象化します。
type PriceRepository interface {
	Upsert(ctx context.Context, bar *priceentity.PriceBar) error
}

// IndicatorRepository は財務指標の永続化を抽象化します。
type IndicatorRepository interface {
	Exists(ctx context.Context, symbol, reportDate string) (bool, error)
	Insert(ctx context.Context, indicator *indicatorentity.FinancialIndicator) error
}

// SaveResult はFetchAndSaveの処理結果です。
// StockSaved は呼び出し後に銘柄行が存在していればtrueです。
// 既登録の銘柄（新規作成なし）も保存成功として扱います。
type SaveResult struct {
	Symbol      string `json:"symbol"`
	StockSaved  bool   `json:"stock_saved"`
	PricesSaved int    `json:"prices_saved"`
}

// BootstrapResult はBootstrapUniverseの処理結果です。
type BootstrapResult struct {
	Seeded    bool `json:"seeded"`
	Stocks    int  `json:"stocks"`
	Refreshed int  `json:"refreshed"`
	Skipped   int  `json:"skipped"`
}

// IngestUsecase は取得・正規化・保存のパイプライン全体を定義します。
type IngestUsecase struct {
	fetcher     Fetcher
	stocks      StockRepository
	prices      PriceRepository
	indicators  IndicatorRepository
	rateLimiter ratelimiter.RateLimiterInterface
	now         func() time.Time
}

// NewIngestUsecase は新しいIngestUsecaseを作成します。
func NewIngestUsecase(
	f Fetcher,
	stocks StockRepository,
	prices PriceRepository,
	indicators IndicatorRepository,
	rl ratelimiter.RateLimiterInterface,
) *IngestUsecase {
	return &IngestUsecase{
		fetcher:     f,
		stocks:      stocks,
		prices:      prices,
		indicators:  indicators,
		rateLimiter: rl,
		now:         time.Now,
	}
}

// RefreshSymbolPrices は指定銘柄の日足を取得し、1本ずつ突合保存します。
// startDate・endDateは"YYYYMMDD"形式で、空文字列の場合はそれぞれ
// 既定の開始日と当日を使用します。adjustは"qfq"（前復権）・"hfq"（後復権）・
// "none"（未復権）のいずれかで、空文字列なら前復権です。
// 1本の保存に失敗しても処理を止めず、ログに残して次の行へ進みます。
// 戻り値は保存に成功した本数です。
func (iu *IngestUsecase) RefreshSymbolPrices(ctx context.Context, symbol, startDate, endDate, adjust string) (int, error) {
	if startDate == "" {
		startDate = defaultStartDate
	}
	if endDate == "" {
		endDate = iu.now().Format(requestDateLayout)
	}
	switch adjust {
	case "":
		adjust = defaultAdjust
	case "none":
		// 上流APIは未復権を空文字列で表す
		adjust = ""
	}

	rows, err := iu.fetcher.DailyBars(ctx, symbol, startDate, endDate, adjust)
	if err != nil {
		return 0, err
	}

	if len(rows) > 0 {
		// 上流のカラム改名をループの奥で黙殺せず、先頭行で大きく警告する
		if err := mapper.Validate(rows[0], mapper.KindDailyBar); err != nil {
			slog.Warn("upstream daily bar schema drift detected", "symbol", symbol, "error", err)
		}
	}

	saved := 0
	for _, raw := range rows {
		normalized := mapper.Map(raw, mapper.KindDailyBar)

		var bar priceentity.PriceBar
		if err := mapper.Decode(normalized, &bar); err != nil {
			// 1行の不正データで全体を止めずスキップする
			slog.Error("failed to decode daily bar", "symbol", symbol, "error", err)
			continue
		}
		bar.Symbol = symbol
		if bar.AdjFactor == 0 {
			bar.AdjFactor = 1.0
		}

		if err := iu.prices.Upsert(ctx, &bar); err != nil {
			slog.Error("failed to upsert daily bar", "symbol", symbol, "date", bar.Date, "error", err)
			continue
		}
		saved++
	}

	slog.Info("refreshed symbol prices", "symbol", symbol, "fetched", len(rows), "saved", saved)
	return saved, nil
}

// FetchAndSave は1銘柄の情報と直近days日分の日足をまとめて取り込みます。
// 行情スナップショットから銘柄名を取得できない場合は、銘柄コードを
// そのまま名称として登録します（後続の更新で上書き可能）。
// 日足が1本も取得できなかった場合はエラーを返します。
func (iu *IngestUsecase) FetchAndSave(ctx context.Context, symbol string, days int) (SaveResult, error) {
	result := SaveResult{Symbol: symbol}
	if days <= 0 {
		days = bootstrapWindowDays
	}

	quotes, err := iu.fetcher.RealtimeQuote(ctx, []string{symbol})
	if err != nil {
		return result, err
	}

	name := symbol
	var quote aktools.Row
	if len(quotes) > 0 {
		quote = mapper.Map(quotes[0], mapper.KindRealtimeQuote)
		if n := stringField(quote, "name"); n != "" {
			name = n
		}
	}

	stock := &stockentity.Stock{
		Symbol:    symbol,
		Name:      name,
		Market:    fetcher.InferMarket(symbol),
		IsActive:  true,
		IsTracked: true,
	}
	created, err := iu.stocks.Save(ctx, stock)
	if err != nil {
		return result, fmt.Errorf("save stock %s: %w", symbol, err)
	}
	// 既登録（created=false）でも銘柄行は存在するので保存成功とみなす
	result.StockSaved = true
	if !created {
		slog.Info("stock already registered", "symbol", symbol)
	}

	if quote != nil {
		if err := iu.stocks.UpdateQuote(ctx, symbol,
			floatField(quote, "current_price"),
			floatField(quote, "total_market_cap"),
			floatField(quote, "pe_ratio"),
			floatField(quote, "pb_ratio"),
		); err != nil {
			slog.Error("failed to update quote columns", "symbol", symbol, "error", err)
		}
	}

	end := iu.now()
	start := end.AddDate(0, 0, -days)
	saved, err := iu.RefreshSymbolPrices(ctx, symbol,
		start.Format(requestDateLayout), end.Format(requestDateLayout), defaultAdjust)
	if err != nil {
		return result, err
	}
	result.PricesSaved = saved

	if saved == 0 {
		return result, fmt.Errorf("no price data for symbol %s", symbol)
	}
	return result, nil
}

// BootstrapUniverse はデータベースが空の場合に限り、上海・深圳の
// 全銘柄リストを取り込み、各銘柄の直近日足を投入します。
// 既に銘柄が1件でも存在する場合は何もしません（再実行に安全）。
// 銘柄リストの取得失敗は全体の失敗、個別銘柄の日足取得失敗は
// スキップとして扱います。
func (iu *IngestUsecase) BootstrapUniverse(ctx context.Context) (BootstrapResult, error) {
	var result BootstrapResult

	count, err := iu.stocks.Count(ctx)
	if err != nil {
		return result, err
	}
	if count > 0 {
		slog.Info("universe already seeded, skipping bootstrap", "stocks", count)
		return result, nil
	}

	markets := []stockentity.MarketType{stockentity.MarketSH, stockentity.MarketSZ}
	var universe []stockentity.Stock
	for _, market := range markets {
		list, err := iu.fetcher.SymbolList(ctx, market)
		if err != nil {
			// 片方の市場だけで始めると不完全なユニバースが確定してしまう
			return result, fmt.Errorf("bootstrap universe: %w", err)
		}
		for _, cn := range list {
			name := cn.Name
			if name == "" {
				name = cn.Code
			}
			universe = append(universe, stockentity.Stock{
				Symbol:    cn.Code,
				Name:      name,
				Market:    market,
				IsActive:  true,
				IsTracked: true,
			})
		}
	}

	result.Seeded = true
	for i := range universe {
		stock := universe[i]
		if _, err := iu.stocks.Save(ctx, &stock); err != nil {
			slog.Error("failed to save stock", "symbol", stock.Symbol, "error", err)
			result.Skipped++
			continue
		}
		result.Stocks++
	}

	end := iu.now()
	start := end.AddDate(0, 0, -bootstrapWindowDays)
	for _, stock := range universe {
		iu.rateLimiter.WaitIfNeeded()
		saved, err := iu.RefreshSymbolPrices(ctx, stock.Symbol,
			start.Format(requestDateLayout), end.Format(requestDateLayout), defaultAdjust)
		if err != nil || saved == 0 {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest prices during bootstrap", "symbol", stock.Symbol, "error", err)
			result.Skipped++
			continue
		}
		result.Refreshed++
	}

	slog.Info("bootstrap finished",
		"stocks", result.Stocks, "refreshed", result.Refreshed, "skipped", result.Skipped)
	return result, nil
}

// RefreshFinancialIndicators は指定銘柄の財務指標を取得し、
// 未登録の報告期だけを保存します。既存の報告期は上書きせずスキップします。
// 取得した生の指標テーブルと、新規に保存した件数を返します。
func (iu *IngestUsecase) RefreshFinancialIndicators(ctx context.Context, symbol, startYear string) ([]aktools.Row, int, error) {
	if startYear == "" {
		startYear = "2020"
	}

	rows, err := iu.fetcher.FinancialIndicators(ctx, symbol, startYear)
	if err != nil {
		return nil, 0, err
	}

	if len(rows) > 0 {
		if err := mapper.Validate(rows[0], mapper.KindFinancialIndicator); err != nil {
			slog.Warn("upstream indicator schema drift detected", "symbol", symbol, "error", err)
		}
	}

	saved := 0
	for _, raw := range rows {
		normalized := mapper.Map(raw, mapper.KindFinancialIndicator)

		reportDate := stringField(normalized, "report_date")
		if reportDate == "" {
			slog.Warn("indicator row without report date", "symbol", symbol)
			continue
		}

		exists, err := iu.indicators.Exists(ctx, symbol, reportDate)
		if err != nil {
			slog.Error("failed to check indicator existence", "symbol", symbol, "report_date", reportDate, "error", err)
			continue
		}
		if exists {
			continue
		}

		// report_dateはエンティティの文字列フィールドに直接設定するため
		// デコード対象から外す
		delete(normalized, "report_date")

		var indicator indicatorentity.FinancialIndicator
		if err := mapper.Decode(normalized, &indicator); err != nil {
			slog.Error("failed to decode indicator", "symbol", symbol, "report_date", reportDate, "error", err)
			continue
		}
		indicator.Symbol = symbol
		indicator.ReportDate = reportDate

		if err := iu.indicators.Insert(ctx, &indicator); err != nil {
			slog.Error("failed to insert indicator", "symbol", symbol, "report_date", reportDate, "error", err)
			continue
		}
		saved++
	}

	slog.Info("refreshed financial indicators", "symbol", symbol, "fetched", len(rows), "saved", saved)
	return rows, saved, nil
}

// stringField は正規化済みの行から文字列の属性を取り出します。
func stringField(row aktools.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

// floatField は正規化済みの行から数値の属性を取り出します。
// 属性が無い、または数値でない場合はnilを返します。
func floatField(row aktools.Row, key string) *float64 {
	if v, ok := row[key].(float64); ok {
		return &v
	}
	return nil
}
