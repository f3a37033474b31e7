package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"starpupil_backend/internal/feature/stocks/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Stock{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedStock creates a test stock in the database for testing.
func seedStock(t *testing.T, db *gorm.DB, symbol, name string, market entity.MarketType) *entity.Stock {
	t.Helper()

	stock := &entity.Stock{
		Symbol:    symbol,
		Name:      name,
		Market:    market,
		IsActive:  true,
		IsTracked: true,
	}
	err := db.Create(stock).Error
	require.NoError(t, err, "failed to seed stock")

	return stock
}

func TestNewStockRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewStockRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestStockMySQL_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stock        *entity.Stock
		wantCreated  bool
		wantErr      bool
		setupFunc    func(t *testing.T, db *gorm.DB)
		validateFunc func(t *testing.T, db *gorm.DB)
	}{
		{
			name: "success: insert new stock",
			stock: &entity.Stock{
				Symbol: "600519", Name: "贵州茅台", Market: entity.MarketSH,
				IsActive: true, IsTracked: true,
			},
			wantCreated: true,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&entity.Stock{}).Count(&count)
				assert.Equal(t, int64(1), count, "stock count does not match")
			},
		},
		{
			name: "success: duplicate symbol is not an error",
			stock: &entity.Stock{
				Symbol: "600519", Name: "different name", Market: entity.MarketSH,
				IsActive: true, IsTracked: true,
			},
			wantCreated: false,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&entity.Stock{}).Count(&count)
				assert.Equal(t, int64(1), count, "stock count should remain 1")

				var stock entity.Stock
				db.Where("symbol = ?", "600519").First(&stock)
				assert.Equal(t, "贵州茅台", stock.Name, "existing row should be untouched")
			},
		},
		{
			name: "success: placeholder name equals symbol",
			stock: &entity.Stock{
				Symbol: "000001", Name: "000001", Market: entity.MarketSZ,
				IsActive: true, IsTracked: true,
			},
			wantCreated: true,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var stock entity.Stock
				db.Where("symbol = ?", "000001").First(&stock)
				assert.Equal(t, "000001", stock.Name)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewStockRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			created, err := repo.Save(context.Background(), tt.stock)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCreated, created, "created flag does not match")
				if tt.validateFunc != nil {
					tt.validateFunc(t, db)
				}
			}
		})
	}
}

func TestStockMySQL_UpdateQuote(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name                     string
		symbol                   string
		price, marketCap, pe, pb *float64
		setupFunc                func(t *testing.T, db *gorm.DB)
		validateFunc             func(t *testing.T, db *gorm.DB)
	}{
		{
			name:   "success: updates all quote columns",
			symbol: "600519",
			price:  f(1680.5), marketCap: f(2.1e12), pe: f(32.4), pb: f(8.9),
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var stock entity.Stock
				db.Where("symbol = ?", "600519").First(&stock)
				require.NotNil(t, stock.CurrentPrice)
				assert.Equal(t, 1680.5, *stock.CurrentPrice)
				require.NotNil(t, stock.PeRatio)
				assert.Equal(t, 32.4, *stock.PeRatio)
			},
		},
		{
			name:   "success: nil arguments leave columns unchanged",
			symbol: "600519",
			price:  f(1700.0),
			setupFunc: func(t *testing.T, db *gorm.DB) {
				s := seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)
				db.Model(s).Update("pe_ratio", 30.0)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var stock entity.Stock
				db.Where("symbol = ?", "600519").First(&stock)
				require.NotNil(t, stock.CurrentPrice)
				assert.Equal(t, 1700.0, *stock.CurrentPrice)
				require.NotNil(t, stock.PeRatio)
				assert.Equal(t, 30.0, *stock.PeRatio, "pe_ratio should not be overwritten by nil")
			},
		},
		{
			name:   "success: all nil is a no-op",
			symbol: "600519",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var stock entity.Stock
				db.Where("symbol = ?", "600519").First(&stock)
				assert.Nil(t, stock.CurrentPrice)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewStockRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			err := repo.UpdateQuote(context.Background(), tt.symbol, tt.price, tt.marketCap, tt.pe, tt.pb)
			assert.NoError(t, err)

			if tt.validateFunc != nil {
				tt.validateFunc(t, db)
			}
		})
	}
}

func TestStockMySQL_FindBySymbol(t *testing.T) {
	t.Parallel()

	t.Run("success: returns stock", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewStockRepository(db)
		seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)

		stock, err := repo.FindBySymbol(context.Background(), "600519")

		require.NoError(t, err)
		assert.Equal(t, "600519", stock.Symbol)
		assert.Equal(t, "贵州茅台", stock.Name)
		assert.Equal(t, entity.MarketSH, stock.Market)
	})

	t.Run("failure: not found", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewStockRepository(db)

		stock, err := repo.FindBySymbol(context.Background(), "999999")

		assert.Nil(t, stock)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestStockMySQL_ListAndCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStockRepository(db)

	seedStock(t, db, "600519", "贵州茅台", entity.MarketSH)
	seedStock(t, db, "000001", "平安银行", entity.MarketSZ)
	seedStock(t, db, "300750", "宁德时代", entity.MarketSZ)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	stocks, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "000001", stocks[0].Symbol, "should be ordered by symbol")
	assert.Equal(t, "300750", stocks[1].Symbol)

	stocks, err = repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "600519", stocks[0].Symbol)

	symbols, err := repo.ListSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"000001", "300750", "600519"}, symbols)
}
