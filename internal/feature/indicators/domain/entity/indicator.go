// Package entity はindicatorsフィーチャーのドメインモデルを定義します。
package entity

import (
	stockentity "starpupil_backend/internal/feature/stocks/domain/entity"
)

// FinancialIndicator は1銘柄・1決算期分の財務指標スナップショットです。
// (Symbol, ReportDate) の組で一意です。既存の決算期に対する再取得は
// 何もしない（上書きもマージもしない）ため、繰り返し実行しても安全です。
// 上流が指標を欠落させることがあるため、各指標は独立にnull許容です。
// jsonタグは正規化後の属性名と一致しており、マッパーが変換した行を
// そのままデコードできます。
// スナップショットの寿命は銘柄マスタに従属し、銘柄の削除とともに削除されます。
type FinancialIndicator struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Symbol     string `gorm:"size:20;not null;uniqueIndex:indicator_sym_report,priority:1" json:"symbol"`
	ReportDate string `gorm:"size:10;not null;uniqueIndex:indicator_sym_report,priority:2" json:"report_date"`

	// stocks.symbol への外部キー（ON DELETE CASCADE）
	Stock stockentity.Stock `gorm:"foreignKey:Symbol;references:Symbol;constraint:OnDelete:CASCADE" json:"-"`

	// 1株あたり指標
	DilutedEps                  *float64 `json:"diluted_eps,omitempty"`
	WeightedEps                 *float64 `json:"weighted_eps,omitempty"`
	AdjustedEps                 *float64 `json:"adjusted_eps,omitempty"`
	NonRecurringEps             *float64 `json:"non_recurring_eps,omitempty"`
	NetAssetsPerSharePre        *float64 `json:"net_assets_per_share_pre,omitempty"`
	NetAssetsPerSharePost       *float64 `json:"net_assets_per_share_post,omitempty"`
	OperatingCashFlowPerShare   *float64 `json:"operating_cash_flow_per_share,omitempty"`
	CapitalReservePerShare      *float64 `json:"capital_reserve_per_share,omitempty"`
	UndistributedProfitPerShare *float64 `json:"undistributed_profit_per_share,omitempty"`
	AdjustedNetAssetsPerShare   *float64 `json:"adjusted_net_assets_per_share,omitempty"`

	// 収益性
	TotalAssetReturnRate      *float64 `json:"total_asset_return_rate,omitempty"`
	MainBusinessProfitMargin  *float64 `json:"main_business_profit_margin,omitempty"`
	TotalAssetNetProfitRate   *float64 `json:"total_asset_net_profit_rate,omitempty"`
	CostExpenseProfitMargin   *float64 `json:"cost_expense_profit_margin,omitempty"`
	OperatingProfitMargin     *float64 `json:"operating_profit_margin,omitempty"`
	MainBusinessCostRate      *float64 `json:"main_business_cost_rate,omitempty"`
	SalesNetProfitMargin      *float64 `json:"sales_net_profit_margin,omitempty"`
	ShareCapitalReturnRate    *float64 `json:"share_capital_return_rate,omitempty"`
	NetAssetReturnRate        *float64 `json:"net_asset_return_rate,omitempty"`
	AssetReturnRate           *float64 `json:"asset_return_rate,omitempty"`
	SalesGrossProfitMargin    *float64 `json:"sales_gross_profit_margin,omitempty"`
	ThreeExpensesRatio        *float64 `json:"three_expenses_ratio,omitempty"`
	NonMainBusinessRatio      *float64 `json:"non_main_business_ratio,omitempty"`
	MainBusinessProfitRatio   *float64 `json:"main_business_profit_ratio,omitempty"`
	DividendPayoutRatio       *float64 `json:"dividend_payout_ratio,omitempty"`
	InvestmentReturnRate      *float64 `json:"investment_return_rate,omitempty"`
	MainBusinessProfit        *float64 `json:"main_business_profit,omitempty"`
	ReturnOnEquity            *float64 `json:"return_on_equity,omitempty"`
	WeightedReturnOnEquity    *float64 `json:"weighted_return_on_equity,omitempty"`
	NetProfitExclNonRecurring *float64 `json:"net_profit_excl_non_recurring,omitempty"`

	// 成長性
	MainBusinessIncomeGrowthRate *float64 `json:"main_business_income_growth_rate,omitempty"`
	NetProfitGrowthRate          *float64 `json:"net_profit_growth_rate,omitempty"`
	NetAssetGrowthRate           *float64 `json:"net_asset_growth_rate,omitempty"`
	TotalAssetGrowthRate         *float64 `json:"total_asset_growth_rate,omitempty"`

	// 回転率
	AccountsReceivableTurnover     *float64 `json:"accounts_receivable_turnover,omitempty"`
	AccountsReceivableTurnoverDays *float64 `json:"accounts_receivable_turnover_days,omitempty"`
	InventoryTurnoverDays          *float64 `json:"inventory_turnover_days,omitempty"`
	InventoryTurnover              *float64 `json:"inventory_turnover,omitempty"`
	FixedAssetsTurnover            *float64 `json:"fixed_assets_turnover,omitempty"`
	TotalAssetsTurnover            *float64 `json:"total_assets_turnover,omitempty"`
	TotalAssetsTurnoverDays        *float64 `json:"total_assets_turnover_days,omitempty"`
	CurrentAssetsTurnover          *float64 `json:"current_assets_turnover,omitempty"`
	CurrentAssetsTurnoverDays      *float64 `json:"current_assets_turnover_days,omitempty"`
	ShareholderEquityTurnover      *float64 `json:"shareholder_equity_turnover,omitempty"`

	// 流動性
	CurrentRatio          *float64 `json:"current_ratio,omitempty"`
	QuickRatio            *float64 `json:"quick_ratio,omitempty"`
	CashRatio             *float64 `json:"cash_ratio,omitempty"`
	InterestCoverageRatio *float64 `json:"interest_coverage_ratio,omitempty"`

	// 負債・資本構成
	LongDebtToWorkingCapitalRatio *float64 `json:"long_debt_to_working_capital_ratio,omitempty"`
	EquityRatio                   *float64 `json:"equity_ratio,omitempty"`
	LongTermDebtRatio             *float64 `json:"long_term_debt_ratio,omitempty"`
	EquityToFixedAssetsRatio      *float64 `json:"equity_to_fixed_assets_ratio,omitempty"`
	LiabilityToEquityRatio        *float64 `json:"liability_to_equity_ratio,omitempty"`
	LongAssetToLongFundRatio      *float64 `json:"long_asset_to_long_fund_ratio,omitempty"`
	CapitalizationRatio           *float64 `json:"capitalization_ratio,omitempty"`
	FixedAssetsNetValueRatio      *float64 `json:"fixed_assets_net_value_ratio,omitempty"`
	CapitalFixationRatio          *float64 `json:"capital_fixation_ratio,omitempty"`
	PropertyRatio                 *float64 `json:"property_ratio,omitempty"`
	LiquidationValueRatio         *float64 `json:"liquidation_value_ratio,omitempty"`
	FixedAssetsProportion         *float64 `json:"fixed_assets_proportion,omitempty"`
	DebtToAssetRatio              *float64 `json:"debt_to_asset_ratio,omitempty"`
	TotalAssets                   *float64 `json:"total_assets,omitempty"`

	// キャッシュフロー
	OperatingCashFlowToSalesRatio     *float64 `json:"operating_cash_flow_to_sales_ratio,omitempty"`
	AssetOperatingCashFlowReturnRate  *float64 `json:"asset_operating_cash_flow_return_rate,omitempty"`
	OperatingCashFlowToNetProfitRatio *float64 `json:"operating_cash_flow_to_net_profit_ratio,omitempty"`
	OperatingCashFlowToLiabilityRatio *float64 `json:"operating_cash_flow_to_liability_ratio,omitempty"`
	CashFlowRatio                     *float64 `json:"cash_flow_ratio,omitempty"`

	// 投資
	ShortTermStockInvestment          *float64 `json:"short_term_stock_investment,omitempty"`
	ShortTermBondInvestment           *float64 `json:"short_term_bond_investment,omitempty"`
	ShortTermOtherOperatingInvestment *float64 `json:"short_term_other_operating_investment,omitempty"`
	LongTermStockInvestment           *float64 `json:"long_term_stock_investment,omitempty"`
	LongTermBondInvestment            *float64 `json:"long_term_bond_investment,omitempty"`
	LongTermOtherOperatingInvestment  *float64 `json:"long_term_other_operating_investment,omitempty"`

	// 債権の年齢区分
	AccountsReceivableWithin1y *float64 `json:"accounts_receivable_within_1y,omitempty"`
	AccountsReceivable1y2y     *float64 `json:"accounts_receivable_1y_2y,omitempty"`
	AccountsReceivable2y3y     *float64 `json:"accounts_receivable_2y_3y,omitempty"`
	AccountsReceivableOver3y   *float64 `json:"accounts_receivable_over_3y,omitempty"`
	PrepaymentsWithin1y        *float64 `json:"prepayments_within_1y,omitempty"`
	Prepayments1y2y            *float64 `json:"prepayments_1y_2y,omitempty"`
	Prepayments2y3y            *float64 `json:"prepayments_2y_3y,omitempty"`
	PrepaymentsOver3y          *float64 `json:"prepayments_over_3y,omitempty"`
	OtherReceivablesWithin1y   *float64 `json:"other_receivables_within_1y,omitempty"`
	OtherReceivables1y2y       *float64 `json:"other_receivables_1y_2y,omitempty"`
	OtherReceivables2y3y       *float64 `json:"other_receivables_2y_3y,omitempty"`
	OtherReceivablesOver3y     *float64 `json:"other_receivables_over_3y,omitempty"`
}

// TableName はGORMが使用するテーブル名を返します。
func (FinancialIndicator) TableName() string {
	return "stock_financial_indicators"
}
