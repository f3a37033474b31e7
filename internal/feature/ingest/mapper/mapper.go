// Package mapper は上流データソースのカラム名を内部スキーマの
// 正規化された属性名へ変換します。変換表はレコード種別ごとに固定で宣言され、
// 値そのものには一切手を加えません（単位変換・数値変換なし）。
package mapper

import (
	"encoding/json"
	"fmt"
	"sort"

	"starpupil_backend/internal/platform/externalapi/aktools"
)

// RecordKind は変換対象のレコード種別です。
type RecordKind string

const (
	// KindDailyBar は日足データです。
	KindDailyBar RecordKind = "daily_bar"
	// KindRealtimeQuote はリアルタイム行情データです。
	KindRealtimeQuote RecordKind = "realtime_quote"
	// KindFinancialIndicator は財務指標データです。
	KindFinancialIndicator RecordKind = "financial_indicator"
)

// dailyBarFields は日足データの上流カラム名→正規化属性名の変換表です。
var dailyBarFields = map[string]string{
	"日期":  "date",
	"开盘":  "open_price",
	"收盘":  "close_price",
	"最高":  "high_price",
	"最低":  "low_price",
	"成交量": "volume",
	"成交额": "amount",
	"振幅":  "amplitude",
	"涨跌幅": "change_percent",
	"涨跌额": "change_amount",
	"换手率": "turnover_rate",
}

// realtimeQuoteFields はリアルタイム行情の上流カラム名→正規化属性名の変換表です。
var realtimeQuoteFields = map[string]string{
	"代码":     "symbol",
	"名称":     "name",
	"最新价":    "current_price",
	"涨跌幅":    "change_percent",
	"涨跌额":    "change_amount",
	"成交量":    "volume",
	"成交额":    "amount",
	"振幅":     "amplitude",
	"最高":     "high_price",
	"最低":     "low_price",
	"今开":     "open_price",
	"昨收":     "pre_close",
	"换手率":    "turnover_rate",
	"市盈率-动态": "pe_ratio",
	"市净率":    "pb_ratio",
	"总市值":    "total_market_cap",
	"流通市值":   "circulating_market_cap",
}

// financialIndicatorFields は財務指標の上流カラム名→正規化属性名の変換表です。
// 正規化名はFinancialIndicatorエンティティのjsonタグと一致します。
var financialIndicatorFields = map[string]string{
	"日期":                "report_date",
	"摊薄每股收益(元)":         "diluted_eps",
	"加权每股收益(元)":         "weighted_eps",
	"每股收益_调整后(元)":       "adjusted_eps",
	"扣除非经常性损益后的每股收益(元)": "non_recurring_eps",
	"每股净资产_调整前(元)":      "net_assets_per_share_pre",
	"每股净资产_调整后(元)":      "net_assets_per_share_post",
	"每股经营性现金流(元)":       "operating_cash_flow_per_share",
	"每股资本公积金(元)":        "capital_reserve_per_share",
	"每股未分配利润(元)":        "undistributed_profit_per_share",
	"调整后的每股净资产(元)":      "adjusted_net_assets_per_share",
	"总资产利润率(%)":         "total_asset_return_rate",
	"主营业务利润率(%)":        "main_business_profit_margin",
	"总资产净利润率(%)":        "total_asset_net_profit_rate",
	"成本费用利润率(%)":        "cost_expense_profit_margin",
	"营业利润率(%)":          "operating_profit_margin",
	"主营业务成本率(%)":        "main_business_cost_rate",
	"销售净利率(%)":          "sales_net_profit_margin",
	"股本报酬率(%)":          "share_capital_return_rate",
	"净资产报酬率(%)":         "net_asset_return_rate",
	"资产报酬率(%)":          "asset_return_rate",
	"销售毛利率(%)":          "sales_gross_profit_margin",
	"三项费用比重":            "three_expenses_ratio",
	"非主营比重":             "non_main_business_ratio",
	"主营利润比重":            "main_business_profit_ratio",
	"股息发放率(%)":          "dividend_payout_ratio",
	"投资收益率(%)":          "investment_return_rate",
	"主营业务利润(元)":         "main_business_profit",
	"净资产收益率(%)":         "return_on_equity",
	"加权净资产收益率(%)":       "weighted_return_on_equity",
	"扣除非经常性损益后的净利润(元)":  "net_profit_excl_non_recurring",
	"主营业务收入增长率(%)":      "main_business_income_growth_rate",
	"净利润增长率(%)":         "net_profit_growth_rate",
	"净资产增长率(%)":         "net_asset_growth_rate",
	"总资产增长率(%)":         "total_asset_growth_rate",
	"应收账款周转率(次)":        "accounts_receivable_turnover",
	"应收账款周转天数(天)":       "accounts_receivable_turnover_days",
	"存货周转天数(天)":         "inventory_turnover_days",
	"存货周转率(次)":          "inventory_turnover",
	"固定资产周转率(次)":        "fixed_assets_turnover",
	"总资产周转率(次)":         "total_assets_turnover",
	"总资产周转天数(天)":        "total_assets_turnover_days",
	"流动资产周转率(次)":        "current_assets_turnover",
	"流动资产周转天数(天)":       "current_assets_turnover_days",
	"股东权益周转率(次)":        "shareholder_equity_turnover",
	"流动比率":              "current_ratio",
	"速动比率":              "quick_ratio",
	"现金比率(%)":           "cash_ratio",
	"利息支付倍数":            "interest_coverage_ratio",
	"长期债务与营运资金比率(%)":    "long_debt_to_working_capital_ratio",
	"股东权益比率(%)":         "equity_ratio",
	"长期负债比率(%)":         "long_term_debt_ratio",
	"股东权益与固定资产比率(%)":    "equity_to_fixed_assets_ratio",
	"负债与所有者权益比率(%)":     "liability_to_equity_ratio",
	"长期资产与长期资金比率(%)":    "long_asset_to_long_fund_ratio",
	"资本化比率(%)":          "capitalization_ratio",
	"固定资产净值率(%)":        "fixed_assets_net_value_ratio",
	"资本固定化比率(%)":        "capital_fixation_ratio",
	"产权比率(%)":           "property_ratio",
	"清算价值比率(%)":         "liquidation_value_ratio",
	"固定资产比重(%)":         "fixed_assets_proportion",
	"资产负债率(%)":          "debt_to_asset_ratio",
	"总资产(元)":            "total_assets",
	"经营现金净流量对销售收入比率(%)": "operating_cash_flow_to_sales_ratio",
	"资产的经营现金流量回报率(%)":   "asset_operating_cash_flow_return_rate",
	"经营现金净流量与净利润的比率(%)": "operating_cash_flow_to_net_profit_ratio",
	"经营现金净流量对负债比率(%)":   "operating_cash_flow_to_liability_ratio",
	"现金流量比率(%)":         "cash_flow_ratio",
	"短期股票投资(元)":         "short_term_stock_investment",
	"短期债券投资(元)":         "short_term_bond_investment",
	"短期其它经营性投资(元)":      "short_term_other_operating_investment",
	"长期股票投资(元)":         "long_term_stock_investment",
	"长期债券投资(元)":         "long_term_bond_investment",
	"长期其它经营性投资(元)":      "long_term_other_operating_investment",
	"1年以内应收帐款(元)":       "accounts_receivable_within_1y",
	"1-2年以内应收帐款(元)":     "accounts_receivable_1y_2y",
	"2-3年以内应收帐款(元)":     "accounts_receivable_2y_3y",
	"3年以内应收帐款(元)":       "accounts_receivable_over_3y",
	"1年以内预付货款(元)":       "prepayments_within_1y",
	"1-2年以内预付货款(元)":     "prepayments_1y_2y",
	"2-3年以内预付货款(元)":     "prepayments_2y_3y",
	"3年以内预付货款(元)":       "prepayments_over_3y",
	"1年以内其它应收款(元)":      "other_receivables_within_1y",
	"1-2年以内其它应收款(元)":    "other_receivables_1y_2y",
	"2-3年以内其它应收款(元)":    "other_receivables_2y_3y",
	"3年以内其它应收款(元)":      "other_receivables_over_3y",
}

// tables はレコード種別ごとの変換表です。
var tables = map[RecordKind]map[string]string{
	KindDailyBar:           dailyBarFields,
	KindRealtimeQuote:      realtimeQuoteFields,
	KindFinancialIndicator: financialIndicatorFields,
}

// Map は上流の1行を正規化属性名の行に変換します。
// 変換表に無い上流カラムは黙って捨てられ、上流に無い正規化属性は
// 結果に現れません（＝null扱い）。値は一切変換しません。
func Map(raw aktools.Row, kind RecordKind) aktools.Row {
	table := tables[kind]
	out := make(aktools.Row, len(table))
	for upstream, canonical := range table {
		if v, ok := raw[upstream]; ok {
			out[canonical] = v
		}
	}
	return out
}

// Validate は上流のサンプル行が期待されるカラムをすべて持つかを検査します。
// カラムの欠落・改名をループの奥で黙殺せず、診断パスで早期に検出するための
// チェックで、欠けているカラムをまとめてエラーで報告します。
func Validate(raw aktools.Row, kind RecordKind) error {
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("mapper: unknown record kind %q", kind)
	}
	var missing []string
	for upstream := range table {
		if _, ok := raw[upstream]; !ok {
			missing = append(missing, upstream)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("mapper: %s row is missing upstream columns %v", kind, missing)
	}
	return nil
}

// Decode は正規化済みの行をjsonタグ付き構造体へ流し込みます。
// 行に存在しない属性はゼロ値（ポインタ型はnil）のまま残ります。
func Decode(row aktools.Row, dst any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
