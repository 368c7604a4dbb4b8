package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// topProductsLimit productos listados en el resumen de ventas.
const topProductsLimit = 10

// ReportUseCase reportes agregados sobre recibos y catálogo. Agrega en
// memoria: el volumen de un POS de mostrador no amerita agregación en el
// backend de documentos.
type ReportUseCase struct {
	transactions repository.TransactionRepository
	products     repository.ProductRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(transactions repository.TransactionRepository, products repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{transactions: transactions, products: products}
}

// SalesSummary agrega los recibos del rango [from, to] (fechas YYYY-MM-DD,
// inclusive): totales del período, desglose diario y productos más vendidos.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, from, to string) (*dto.SalesSummaryDTO, error) {
	if from == "" || to == "" || from > to {
		return nil, domain.ErrInvalidInput
	}
	txs, err := uc.transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummaryDTO{
		From:    from,
		To:      to,
		Revenue: decimal.Zero,
		COGS:    decimal.Zero,
		Profit:  decimal.Zero,
	}
	days := make(map[string]*dto.DailySalesDTO)
	top := make(map[string]*dto.TopProductDTO)

	for _, t := range txs {
		if t.Date < from || t.Date > to {
			continue
		}
		summary.Revenue = summary.Revenue.Add(t.Total)
		summary.COGS = summary.COGS.Add(t.COGS)
		summary.Profit = summary.Profit.Add(t.Profit)
		summary.Transactions++

		day, ok := days[t.Date]
		if !ok {
			day = &dto.DailySalesDTO{
				Date:    t.Date,
				Revenue: decimal.Zero,
				COGS:    decimal.Zero,
				Profit:  decimal.Zero,
			}
			days[t.Date] = day
		}
		day.Revenue = day.Revenue.Add(t.Total)
		day.COGS = day.COGS.Add(t.COGS)
		day.Profit = day.Profit.Add(t.Profit)
		day.Transactions++

		for _, item := range t.Items {
			p, ok := top[item.ProductID]
			if !ok {
				p = &dto.TopProductDTO{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Revenue:     decimal.Zero,
				}
				top[item.ProductID] = p
			}
			p.UnitsSold += item.Quantity
			p.Revenue = p.Revenue.Add(item.LineTotal)
		}
	}

	summary.Days = make([]dto.DailySalesDTO, 0, len(days))
	for _, d := range days {
		summary.Days = append(summary.Days, *d)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})

	summary.TopProducts = make([]dto.TopProductDTO, 0, len(top))
	for _, p := range top {
		summary.TopProducts = append(summary.TopProducts, *p)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		if summary.TopProducts[i].UnitsSold != summary.TopProducts[j].UnitsSold {
			return summary.TopProducts[i].UnitsSold > summary.TopProducts[j].UnitsSold
		}
		return summary.TopProducts[i].ProductName < summary.TopProducts[j].ProductName
	})
	if len(summary.TopProducts) > topProductsLimit {
		summary.TopProducts = summary.TopProducts[:topProductsLimit]
	}

	return summary, nil
}

// StockReport devuelve los productos con stock en o por debajo del umbral,
// ordenados de menor a mayor stock.
func (uc *ReportUseCase) StockReport(ctx context.Context, threshold int) ([]dto.StockAlertDTO, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertDTO, 0)
	for _, p := range products {
		if p.Stock <= threshold {
			alerts = append(alerts, dto.StockAlertDTO{
				ProductID:   p.ID,
				ProductName: p.Name,
				Category:    p.Category,
				Stock:       p.Stock,
			})
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Stock != alerts[j].Stock {
			return alerts[i].Stock < alerts[j].Stock
		}
		return alerts[i].ProductName < alerts[j].ProductName
	})
	return alerts, nil
}
