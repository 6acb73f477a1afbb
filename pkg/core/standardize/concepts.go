// Package standardize maps heterogeneous company-specific XBRL tags onto a
// canonical statement vocabulary. A baseline mapping covers us-gaap style
// tags; per-company definitions layer overrides on top, resolved by entity
// prefix detection.
package standardize

// StandardConcept is the canonical, company-independent identity of a
// statement line. The value is the display label.
type StandardConcept string

func (c StandardConcept) String() string { return string(c) }

// Income statement
const (
	Revenue           StandardConcept = "Revenue"
	CostOfRevenue     StandardConcept = "Cost of Revenue"
	GrossProfit       StandardConcept = "Gross Profit"
	OperatingExpenses StandardConcept = "Operating Expenses"
	ResearchExpense   StandardConcept = "Research and Development Expense"
	SellingExpense    StandardConcept = "Selling, General and Administrative Expense"
	OperatingIncome   StandardConcept = "Operating Income"
	InterestExpense   StandardConcept = "Interest Expense"
	IncomeTaxExpense  StandardConcept = "Income Tax Expense"
	NetIncome         StandardConcept = "Net Income"
	EarningsPerShare  StandardConcept = "Earnings Per Share"
)

// Balance sheet
const (
	CashAndEquivalents   StandardConcept = "Cash and Cash Equivalents"
	ShortTermInvestments StandardConcept = "Short Term Investments"
	AccountsReceivable   StandardConcept = "Accounts Receivable"
	Inventory            StandardConcept = "Inventory"
	TotalCurrentAssets   StandardConcept = "Total Current Assets"
	PropertyPlantNet     StandardConcept = "Property, Plant and Equipment, Net"
	TotalAssets          StandardConcept = "Total Assets"
	AccountsPayable      StandardConcept = "Accounts Payable"
	TotalCurrentLiab     StandardConcept = "Total Current Liabilities"
	LongTermDebt         StandardConcept = "Long Term Debt"
	TotalLiabilities     StandardConcept = "Total Liabilities"
	StockholdersEquity   StandardConcept = "Stockholders Equity"
	TotalLiabAndEquity   StandardConcept = "Total Liabilities and Equity"
)

// Cash flow
const (
	OperatingCashFlow  StandardConcept = "Operating Cash Flow"
	InvestingCashFlow  StandardConcept = "Investing Cash Flow"
	FinancingCashFlow  StandardConcept = "Financing Cash Flow"
	NetChangeInCash    StandardConcept = "Net Change in Cash"
	CapitalExpenditure StandardConcept = "Capital Expenditure"
	DepreciationAmort  StandardConcept = "Depreciation and Amortization"
)

// Company-layer concepts seen in practice (segment revenue lines etc.)
const (
	AutomotiveRevenue        StandardConcept = "Automotive Revenue"
	AutomotiveLeasingRevenue StandardConcept = "Automotive Leasing Revenue"
	EnergyRevenue            StandardConcept = "Energy Revenue"
	ProductRevenue           StandardConcept = "Product Revenue"
	ServiceRevenue           StandardConcept = "Service Revenue"
)

// conceptAliases maps legacy / variant spellings to their canonical concept.
// Resolution happens once at the lookup boundary; everything downstream of
// Canonical compares canonical values only.
var conceptAliases = map[string]StandardConcept{
	"Profit/Loss":                 NetIncome,
	"Net Profit":                  NetIncome,
	"Net Earnings":                NetIncome,
	"Sales":                       Revenue,
	"Total Revenue":               Revenue,
	"Net Sales":                   Revenue,
	"Cost of Goods Sold":          CostOfRevenue,
	"Cost of Sales":               CostOfRevenue,
	"Shareholders Equity":         StockholdersEquity,
	"Total Equity":                StockholdersEquity,
	"Cash Flow from Operations":   OperatingCashFlow,
	"Cash Flow from Investing":    InvestingCashFlow,
	"Cash Flow from Financing":    FinancingCashFlow,
	"Capex":                       CapitalExpenditure,
	"Property and Equipment, Net": PropertyPlantNet,
}

// Canonical resolves a label that may be an alias into its canonical
// StandardConcept. Unknown labels pass through unchanged so company
// definitions can introduce concepts this package does not predeclare.
func Canonical(label string) StandardConcept {
	if c, ok := conceptAliases[label]; ok {
		return c
	}
	return StandardConcept(label)
}
