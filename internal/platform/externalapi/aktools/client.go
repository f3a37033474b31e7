package aktools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"starpupil_backend/internal/feature/stocks/domain/entity"
)

// Row は上流APIが返す1レコード分の生データです。
// カラム名は上流定義（中国語）のままで、正規化はマッパーが行います。
type Row map[string]any

// CodeName は銘柄リストAPIの1行（コードと名称）です。
type CodeName struct {
	Code string
	Name string
}

// Client はAKTools公開APIへアクセスするHTTPクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// listEndpoints は市場区分ごとの銘柄リストAPIとそのカラム名です。
// 上海と深圳でエンドポイントもカラム名も異なります。
var listEndpoints = map[entity.MarketType]struct {
	endpoint string
	codeCol  string
	nameCol  string
}{
	entity.MarketSH: {endpoint: "stock_info_sh_name_code", codeCol: "证券代码", nameCol: "证券简称"},
	entity.MarketSZ: {endpoint: "stock_info_sz_name_code", codeCol: "A股代码", nameCol: "A股简称"},
}

// StockInfoCodeName は指定された市場の全銘柄のコードと名称を返します。
func (c *Client) StockInfoCodeName(ctx context.Context, market entity.MarketType) ([]CodeName, error) {
	ep, ok := listEndpoints[market]
	if !ok {
		return nil, fmt.Errorf("aktools: unsupported market %q", market)
	}

	rows, err := c.get(ctx, ep.endpoint, nil)
	if err != nil {
		return nil, err
	}

	out := make([]CodeName, 0, len(rows))
	for _, r := range rows {
		code, _ := r[ep.codeCol].(string)
		name, _ := r[ep.nameCol].(string)
		if code == "" {
			continue
		}
		out = append(out, CodeName{Code: code, Name: name})
	}
	return out, nil
}

// StockZhAHist はA株の日足履歴を取得します。日付は"YYYYMMDD"形式、
// adjustは"qfq"(前復権)・"hfq"(後復権)・""(未復権)のいずれかです。
func (c *Client) StockZhAHist(ctx context.Context, symbol, startDate, endDate, adjust string) ([]Row, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("period", "daily")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("adjust", adjust)
	return c.get(ctx, "stock_zh_a_hist", q)
}

// StockZhASpot はA株全銘柄のリアルタイム行情を取得します。
func (c *Client) StockZhASpot(ctx context.Context) ([]Row, error) {
	return c.get(ctx, "stock_zh_a_spot_em", nil)
}

// StockFinancialAnalysisIndicator は指定銘柄の財務指標テーブルを取得します。
// 上流はstart_yearを厳密なフィルタとしては扱わず、全履歴を返すことがあります。
func (c *Client) StockFinancialAnalysisIndicator(ctx context.Context, symbol, startYear string) ([]Row, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start_year", startYear)
	return c.get(ctx, "stock_financial_analysis_indicator", q)
}

// get はAKTools公開APIのエンドポイントを呼び出し、JSON配列を行のスライスにデコードします。
func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]Row, error) {
	u := fmt.Sprintf("%s/api/public/%s", c.cfg.BaseURL, endpoint)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("aktools %s: http %d", endpoint, res.StatusCode)
	}

	var rows []Row
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("aktools %s: decode: %w", endpoint, err)
	}
	return rows, nil
}
