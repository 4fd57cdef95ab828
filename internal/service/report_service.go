package service

import (
	"fmt"
	"sort"
	"time"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bucket retention, most recent first
const (
	maxDailyBuckets   = 30
	maxWeeklyBuckets  = 12
	maxMonthlyBuckets = 12
	maxYearlyBuckets  = 5
)

type TopProduct struct {
	Name   string  `json:"name"`
	Profit float64 `json:"profit"`
}

type ProfitReport struct {
	Period           string     `json:"period"`
	TotalRevenue     float64    `json:"totalRevenue"`
	TotalCost        float64    `json:"totalCost"`
	Profit           float64    `json:"profit"`
	ProfitMargin     float64    `json:"profitMargin"`
	TransactionCount int        `json:"transactionCount"`
	TopProduct       TopProduct `json:"topProduct"`
}

type ReportSummary struct {
	TotalProfit         float64 `json:"totalProfit"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalCost           float64 `json:"totalCost"`
	AverageProfitMargin float64 `json:"averageProfitMargin"`
}

type ReportsData struct {
	Daily   []ProfitReport `json:"daily"`
	Weekly  []ProfitReport `json:"weekly"`
	Monthly []ProfitReport `json:"monthly"`
	Yearly  []ProfitReport `json:"yearly"`
	Summary ReportSummary  `json:"summary"`
}

// ReportService rolls the transaction log into profit summaries bucketed by
// calendar period. Profit math prices SELL movements at the product's
// current buy/sell prices; BUY movements only count toward transaction
// totals, never toward profit.
type ReportService interface {
	GetReports(startDate, endDate *time.Time) (*ReportsData, error)
}

type reportService struct {
	txnRepo     repository.TransactionRepository
	productRepo repository.ProductRepository
}

func NewReportService(txnRepo repository.TransactionRepository, productRepo repository.ProductRepository) ReportService {
	return &reportService{txnRepo: txnRepo, productRepo: productRepo}
}

func (s *reportService) GetReports(startDate, endDate *time.Time) (*ReportsData, error) {
	txns, err := s.txnRepo.FindForReport(nil, nil)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	products, err := s.productRepo.FindAllUnscoped()
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	txns = FilterByDateRange(txns, startDate, endDate)
	data := BuildReports(txns, products)
	return &data, nil
}

// FilterByDateRange keeps transactions whose creation date falls inside the
// inclusive [start, end] range, compared at day granularity in local time.
func FilterByDateRange(txns []model.Transaction, start, end *time.Time) []model.Transaction {
	if start == nil && end == nil {
		return txns
	}
	filtered := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		day := dateOnly(txn.CreatedAt)
		if start != nil && day.Before(dateOnly(*start)) {
			continue
		}
		if end != nil && day.After(dateOnly(*end)) {
			continue
		}
		filtered = append(filtered, txn)
	}
	return filtered
}

func dateOnly(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// BuildReports derives all four bucket sets and the summary from one
// transaction list. Pure function of its inputs: rerunning it over the same
// list yields identical keys, ordering and totals.
func BuildReports(txns []model.Transaction, products []model.Product) ReportsData {
	index := indexProducts(products)
	return ReportsData{
		Daily:   dailyReports(txns, index),
		Weekly:  weeklyReports(txns, index),
		Monthly: monthlyReports(txns, index),
		Yearly:  yearlyReports(txns, index),
		Summary: summarize(txns, index),
	}
}

func indexProducts(products []model.Product) map[uuid.UUID]*model.Product {
	index := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
	}
	return index
}

func dailyReports(txns []model.Transaction, products map[uuid.UUID]*model.Product) []ProfitReport {
	buckets := map[string][]model.Transaction{}
	for _, txn := range txns {
		key := dateOnly(txn.CreatedAt).Format("2006-01-02")
		buckets[key] = append(buckets[key], txn)
	}

	keys := sortedKeysDesc(buckets)
	if len(keys) > maxDailyBuckets {
		keys = keys[:maxDailyBuckets]
	}

	reports := make([]ProfitReport, 0, len(keys))
	for _, key := range keys {
		reports = append(reports, computePeriodReport(key, buckets[key], products))
	}
	return reports
}

// weekKey identifies a calendar-month-relative week. Week N follows the
// original scheme ceil((dayOfMonth + weekday(first of month) - 1) / 7) with
// Sunday-based weekdays; weeks are not ISO weeks and a month's first bucket
// can be "Week 0" when the month starts on a Sunday.
type weekKey struct {
	year  int
	month time.Month
	week  int
}

func (k weekKey) String() string {
	return fmt.Sprintf("%s %d - Week %d", k.month.String(), k.year, k.week)
}

func weeklyReports(txns []model.Transaction, products map[uuid.UUID]*model.Product) []ProfitReport {
	buckets := map[weekKey][]model.Transaction{}
	for _, txn := range txns {
		local := txn.CreatedAt.Local()
		firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
		week := (local.Day() + int(firstOfMonth.Weekday()) - 1 + 6) / 7
		key := weekKey{year: local.Year(), month: local.Month(), week: week}
		buckets[key] = append(buckets[key], txn)
	}

	keys := make([]weekKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		if keys[i].month != keys[j].month {
			return keys[i].month > keys[j].month
		}
		return keys[i].week > keys[j].week
	})
	if len(keys) > maxWeeklyBuckets {
		keys = keys[:maxWeeklyBuckets]
	}

	reports := make([]ProfitReport, 0, len(keys))
	for _, key := range keys {
		reports = append(reports, computePeriodReport(key.String(), buckets[key], products))
	}
	return reports
}

func monthlyReports(txns []model.Transaction, products map[uuid.UUID]*model.Product) []ProfitReport {
	buckets := map[string][]model.Transaction{}
	for _, txn := range txns {
		key := dateOnly(txn.CreatedAt).Format("2006-01")
		buckets[key] = append(buckets[key], txn)
	}

	keys := sortedKeysDesc(buckets)
	if len(keys) > maxMonthlyBuckets {
		keys = keys[:maxMonthlyBuckets]
	}

	reports := make([]ProfitReport, 0, len(keys))
	for _, key := range keys {
		// Label as "<MonthName> <Year>"
		t, _ := time.ParseInLocation("2006-01", key, time.Local)
		label := fmt.Sprintf("%s %d", t.Month().String(), t.Year())
		reports = append(reports, computePeriodReport(label, buckets[key], products))
	}
	return reports
}

func yearlyReports(txns []model.Transaction, products map[uuid.UUID]*model.Product) []ProfitReport {
	buckets := map[string][]model.Transaction{}
	for _, txn := range txns {
		key := dateOnly(txn.CreatedAt).Format("2006")
		buckets[key] = append(buckets[key], txn)
	}

	keys := sortedKeysDesc(buckets)
	if len(keys) > maxYearlyBuckets {
		keys = keys[:maxYearlyBuckets]
	}

	reports := make([]ProfitReport, 0, len(keys))
	for _, key := range keys {
		reports = append(reports, computePeriodReport(key, buckets[key], products))
	}
	return reports
}

func sortedKeysDesc(buckets map[string][]model.Transaction) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// computePeriodReport aggregates one bucket. Transactions whose product no
// longer resolves (permanently deleted) are skipped; BUY movements count
// toward transactionCount only.
func computePeriodReport(period string, txns []model.Transaction, products map[uuid.UUID]*model.Product) ProfitReport {
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	productProfits := map[string]decimal.Decimal{}

	for _, txn := range txns {
		product, ok := products[txn.ProductID]
		if !ok {
			continue
		}
		if txn.Type != model.MovementSell {
			continue
		}

		qty := decimal.NewFromInt(int64(txn.Quantity))
		totalRevenue = totalRevenue.Add(product.SellPrice.Mul(qty))
		totalCost = totalCost.Add(product.BuyPrice.Mul(qty))

		margin := product.SellPrice.Sub(product.BuyPrice).Mul(qty)
		productProfits[product.Name] = productProfits[product.Name].Add(margin)
	}

	profit := totalRevenue.Sub(totalCost)
	profitMargin := 0.0
	if totalRevenue.IsPositive() {
		profitMargin = profit.Div(totalRevenue).InexactFloat64() * 100
	}

	top := TopProduct{Name: "No sales", Profit: 0}
	bestSet := false
	var best decimal.Decimal
	names := make([]string, 0, len(productProfits))
	for name := range productProfits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := productProfits[name]
		if !bestSet || p.GreaterThan(best) {
			best = p
			top = TopProduct{Name: name, Profit: p.InexactFloat64()}
			bestSet = true
		}
	}

	return ProfitReport{
		Period:           period,
		TotalRevenue:     totalRevenue.InexactFloat64(),
		TotalCost:        totalCost.InexactFloat64(),
		Profit:           profit.InexactFloat64(),
		ProfitMargin:     profitMargin,
		TransactionCount: len(txns),
		TopProduct:       top,
	}
}

// summarize applies the per-bucket math to the whole filtered set.
func summarize(txns []model.Transaction, products map[uuid.UUID]*model.Product) ReportSummary {
	whole := computePeriodReport("summary", txns, products)
	return ReportSummary{
		TotalProfit:         whole.Profit,
		TotalRevenue:        whole.TotalRevenue,
		TotalCost:           whole.TotalCost,
		AverageProfitMargin: whole.ProfitMargin,
	}
}
