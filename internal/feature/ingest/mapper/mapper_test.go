package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	priceentity "starpupil_backend/internal/feature/prices/domain/entity"
	"starpupil_backend/internal/platform/externalapi/aktools"
)

func TestMap_DailyBar(t *testing.T) {
	t.Parallel()

	raw := aktools.Row{
		"日期":   "2024-01-02",
		"开盘":   1650.0,
		"收盘":   1680.0,
		"最高":   1690.0,
		"最低":   1640.0,
		"成交量":  25000.0,
		"成交额":  4.2e7,
		"涨跌幅":  1.2,
		"涨跌额":  19.8,
		"换手率":  0.8,
		"謎のカラム": "dropped", // 変換表に無いカラムは黙って捨てられる
	}

	got := Map(raw, KindDailyBar)

	assert.Equal(t, "2024-01-02", got["date"])
	assert.Equal(t, 1650.0, got["open_price"])
	assert.Equal(t, 1680.0, got["close_price"])
	assert.Equal(t, 4.2e7, got["amount"])
	assert.Equal(t, 0.8, got["turnover_rate"])
	assert.NotContains(t, got, "謎のカラム")
	assert.NotContains(t, got, "amplitude", "missing upstream column must be absent, not zero")
}

func TestMap_RealtimeQuote(t *testing.T) {
	t.Parallel()

	raw := aktools.Row{
		"代码":     "600519",
		"名称":     "贵州茅台",
		"最新价":    1680.5,
		"市盈率-动态": 32.4,
		"总市值":    2.1e12,
	}

	got := Map(raw, KindRealtimeQuote)

	assert.Equal(t, "600519", got["symbol"])
	assert.Equal(t, "贵州茅台", got["name"])
	assert.Equal(t, 1680.5, got["current_price"])
	assert.Equal(t, 32.4, got["pe_ratio"])
	assert.Equal(t, 2.1e12, got["total_market_cap"])
	assert.NotContains(t, got, "pb_ratio")
}

func TestMap_FinancialIndicator(t *testing.T) {
	t.Parallel()

	raw := aktools.Row{
		"日期":        "2023-12-31",
		"摊薄每股收益(元)": 2.5,
		"净资产收益率(%)": 15.3,
		"资产负债率(%)":  42.1,
	}

	got := Map(raw, KindFinancialIndicator)

	assert.Equal(t, "2023-12-31", got["report_date"])
	assert.Equal(t, 2.5, got["diluted_eps"])
	assert.Equal(t, 15.3, got["return_on_equity"])
	assert.Equal(t, 42.1, got["debt_to_asset_ratio"])
	assert.Len(t, got, 4, "only present upstream columns appear")
}

func TestMap_ValuesAreNotConverted(t *testing.T) {
	t.Parallel()

	// 値の型も内容も素通しであること（単位変換・数値変換なし）
	raw := aktools.Row{"日期": "2024-01-02", "收盘": "1680.00"}

	got := Map(raw, KindDailyBar)

	assert.Equal(t, "1680.00", got["close_price"], "values must pass through untouched")
}

func TestFieldTables_CanonicalNamesAreUnique(t *testing.T) {
	t.Parallel()

	// 2つの上流カラムが同じ正規化名に潰れると、どちらの値が残るかが
	// マップの走査順に依存してしまう
	tables := map[RecordKind]map[string]string{
		KindDailyBar:           dailyBarFields,
		KindRealtimeQuote:      realtimeQuoteFields,
		KindFinancialIndicator: financialIndicatorFields,
	}
	for kind, fields := range tables {
		seen := make(map[string]string, len(fields))
		for upstream, canonical := range fields {
			if prev, dup := seen[canonical]; dup {
				t.Errorf("%s: canonical name %q mapped from both %q and %q", kind, canonical, prev, upstream)
			}
			seen[canonical] = upstream
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fullBar := aktools.Row{
		"日期": "2024-01-02", "开盘": 1.0, "收盘": 1.0, "最高": 1.0, "最低": 1.0,
		"成交量": 1.0, "成交额": 1.0, "振幅": 1.0, "涨跌幅": 1.0, "涨跌额": 1.0, "换手率": 1.0,
	}

	t.Run("success: all columns present", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Validate(fullBar, KindDailyBar))
	})

	t.Run("failure: reports all missing columns", func(t *testing.T) {
		t.Parallel()

		partial := aktools.Row{"日期": "2024-01-02", "收盘": 1680.0}

		err := Validate(partial, KindDailyBar)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "开盘")
		assert.Contains(t, err.Error(), "换手率")
		assert.NotContains(t, err.Error(), "日期")
	})

	t.Run("failure: unknown record kind", func(t *testing.T) {
		t.Parallel()

		err := Validate(aktools.Row{}, RecordKind("weekly_bar"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown record kind")
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("success: populates tagged fields and leaves the rest zero", func(t *testing.T) {
		t.Parallel()

		row := aktools.Row{
			"date":        "2024-01-02",
			"open_price":  1650.0,
			"close_price": 1680.0,
		}

		var bar priceentity.PriceBar
		err := Decode(row, &bar)

		require.NoError(t, err)
		assert.Equal(t, "2024-01-02", bar.Date)
		assert.Equal(t, 1650.0, bar.OpenPrice)
		assert.Equal(t, 0.0, bar.Volume, "missing attribute stays zero")
	})

	t.Run("failure: type mismatch", func(t *testing.T) {
		t.Parallel()

		row := aktools.Row{"open_price": "not-a-number"}

		var bar priceentity.PriceBar
		err := Decode(row, &bar)

		assert.Error(t, err)
	})
}
