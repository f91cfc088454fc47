// Package brokerage parses capital-gains summaries out of brokerage 1099-B
// statement text. It consumes text already extracted from the statement;
// PDF extraction itself happens upstream.
package brokerage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// Brokerage identifies the statement's issuing broker.
type Brokerage string

const (
	Robinhood          Brokerage = "robinhood"
	InteractiveBrokers Brokerage = "interactive_brokers"
	SchwabTD           Brokerage = "schwab_td"
	Fidelity           Brokerage = "fidelity"
	ETrade             Brokerage = "etrade"
	UnknownBrokerage   Brokerage = "unknown"
)

// Transaction is a single reported sale, or a statement-level summary row
// when the broker only publishes totals.
type Transaction struct {
	CUSIP        string          `json:"cusip"`
	Description  string          `json:"description"`
	DateAcquired string          `json:"dateAcquired"`
	DateSold     string          `json:"dateSold"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	WashSaleLoss decimal.Decimal `json:"washSaleLoss"`
	NetGainLoss  decimal.Decimal `json:"netGainLoss"`
	Quantity     int             `json:"quantity"`
	IsLongTerm   bool            `json:"isLongTerm"`
	FormType     string          `json:"formType"`
}

// Statement is the parsed 1099-B summary.
type Statement struct {
	Brokerage  Brokerage `json:"brokerage"`
	DocumentID string    `json:"documentId"`

	TotalProceeds     decimal.Decimal `json:"totalProceeds"`
	TotalCostBasis    decimal.Decimal `json:"totalCostBasis"`
	TotalNetGainLoss  decimal.Decimal `json:"totalNetGainLoss"`
	TotalWashSaleLoss decimal.Decimal `json:"totalWashSaleLoss"`

	ShortTermProceeds    decimal.Decimal `json:"shortTermProceeds"`
	ShortTermCostBasis   decimal.Decimal `json:"shortTermCostBasis"`
	ShortTermNetGainLoss decimal.Decimal `json:"shortTermNetGainLoss"`
	LongTermProceeds     decimal.Decimal `json:"longTermProceeds"`
	LongTermCostBasis    decimal.Decimal `json:"longTermCostBasis"`
	LongTermNetGainLoss  decimal.Decimal `json:"longTermNetGainLoss"`

	Transactions []Transaction `json:"transactions"`
}

// ApplyToProfile folds the statement's net gain or loss into the profile's
// capital gains field.
func (s *Statement) ApplyToProfile(p *domain.TaxProfile) {
	p.Income.CapitalGains = p.Income.CapitalGains.Add(s.TotalNetGainLoss)
}

var currencyNoise = regexp.MustCompile(`[^\d.,\-]`)

// ParseCurrency coerces a currency string to a decimal amount. Parenthesized
// values are negative, grouping commas and symbols are stripped, and
// anything unparsable comes back as zero.
func ParseCurrency(text string) decimal.Decimal {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero
	}

	negative := strings.Contains(text, "(") && strings.Contains(text, ")")
	cleaned := currencyNoise.ReplaceAllString(text, "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return value.Abs().Neg()
	}
	return value
}

// DetectBrokerage identifies the issuing broker from the statement text.
func DetectBrokerage(text string) Brokerage {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "robinhood"):
		return Robinhood
	case strings.Contains(lower, "interactive brokers") || strings.Contains(lower, "ibkr"):
		return InteractiveBrokers
	case strings.Contains(lower, "td ameritrade") || strings.Contains(lower, "schwab"):
		return SchwabTD
	case strings.Contains(lower, "fidelity"):
		return Fidelity
	case strings.Contains(lower, "e*trade") || strings.Contains(lower, "etrade"):
		return ETrade
	default:
		return UnknownBrokerage
	}
}

// ParseStatement detects the broker and dispatches to its parser.
func ParseStatement(text string) (*Statement, error) {
	broker := DetectBrokerage(text)
	var (
		stmt *Statement
		err  error
	)
	switch broker {
	case Robinhood:
		stmt, err = parseRobinhood(text)
	case InteractiveBrokers:
		stmt, err = parseInteractiveBrokers(text)
	case SchwabTD, Fidelity, ETrade:
		return nil, fmt.Errorf("brokerage %q is recognized but statement parsing is not supported yet", broker)
	default:
		return nil, fmt.Errorf("could not identify brokerage from statement text")
	}
	if err != nil {
		return nil, err
	}
	stmt.Brokerage = broker
	stmt.DocumentID = string(broker) + "-1099B"
	return stmt, nil
}

// Robinhood publishes a Schedule D summary with five amounts: proceeds,
// cost basis, market discount, wash sale loss, net gain.
var robinhoodSummaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)Grand total\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,\-]+\.\d{2})`),
	regexp.MustCompile(`(?is)Grandtotal\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,\-]+\.\d{2})`),
	regexp.MustCompile(`(?is)Total Short-term\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,\-]+\.\d{2})`),
}

func parseRobinhood(text string) (*Statement, error) {
	for _, pattern := range robinhoodSummaryPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		proceeds := ParseCurrency(match[1])
		costBasis := ParseCurrency(match[2])
		washSale := ParseCurrency(match[4])
		netGain := ParseCurrency(match[5])

		return &Statement{
			TotalProceeds:        proceeds,
			TotalCostBasis:       costBasis,
			TotalNetGainLoss:     netGain,
			TotalWashSaleLoss:    washSale,
			ShortTermProceeds:    proceeds,
			ShortTermCostBasis:   costBasis,
			ShortTermNetGainLoss: netGain,
			Transactions: []Transaction{{
				Description:  "Short-term capital gains summary (multiple transactions)",
				DateAcquired: "Various",
				DateSold:     "Various",
				Proceeds:     proceeds,
				CostBasis:    costBasis,
				WashSaleLoss: washSale,
				NetGainLoss:  netGain,
				Quantity:     1,
				FormType:     "A",
			}},
		}, nil
	}
	return nil, fmt.Errorf("robinhood schedule D summary not found in statement text")
}

// Interactive Brokers lists per-transaction rows. The patterns run from most
// permissive to most specific; the first one that matches any line wins and
// the rest are skipped.
var ibkrLinePatterns = []*regexp.Regexp{
	// four bare amounts: proceeds, cost, market discount, wash sale
	regexp.MustCompile(`([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,\-]+\.\d{2})`),
	// security name followed by the four amounts
	regexp.MustCompile(`([A-Z\s&.]+)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,\-]+\.\d{2})`),
}

func parseInteractiveBrokers(text string) (*Statement, error) {
	lines := strings.Split(text, "\n")

	var transactions []Transaction
	totalProceeds := decimal.Zero
	totalCostBasis := decimal.Zero
	totalWashSale := decimal.Zero
	totalNetGain := decimal.Zero

	for patternIdx, pattern := range ibkrLinePatterns {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			var description string
			var amounts []string
			if patternIdx == 0 {
				description = fmt.Sprintf("Transaction %d", len(transactions)+1)
				amounts = match[1:5]
			} else {
				description = strings.TrimSpace(match[1])
				amounts = match[2:6]
			}

			proceeds := ParseCurrency(amounts[0])
			costBasis := ParseCurrency(amounts[1])
			washSale := ParseCurrency(amounts[3])
			netGain := proceeds.Sub(costBasis)

			transactions = append(transactions, Transaction{
				Description:  description,
				DateAcquired: "Various",
				DateSold:     "Various",
				Proceeds:     proceeds,
				CostBasis:    costBasis,
				WashSaleLoss: washSale,
				NetGainLoss:  netGain,
				Quantity:     1,
				FormType:     "A",
			})

			totalProceeds = totalProceeds.Add(proceeds)
			totalCostBasis = totalCostBasis.Add(costBasis)
			totalWashSale = totalWashSale.Add(washSale)
			totalNetGain = totalNetGain.Add(netGain)
		}
		if len(transactions) > 0 {
			break
		}
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("no interactive brokers transaction rows found in statement text")
	}

	return &Statement{
		TotalProceeds:        totalProceeds,
		TotalCostBasis:       totalCostBasis,
		TotalNetGainLoss:     totalNetGain,
		TotalWashSaleLoss:    totalWashSale,
		ShortTermProceeds:    totalProceeds,
		ShortTermCostBasis:   totalCostBasis,
		ShortTermNetGainLoss: totalNetGain,
		Transactions:         transactions,
	}, nil
}
