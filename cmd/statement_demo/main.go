// Command statement_demo builds statements offline from a pre-extracted
// facts fixture. It exercises the full core path: period selection, concept
// standardization, assembly, and (when DATABASE_URL is set) the statement
// cache. No network access; extraction is owned by external tooling.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"xbrl_statements/pkg/core/periods"
	"xbrl_statements/pkg/core/standardize"
	"xbrl_statements/pkg/core/statement"
	"xbrl_statements/pkg/core/store"
	"xbrl_statements/pkg/models"
)

// fixture is the demo input: the extraction layer's output for one filing
type fixture struct {
	CIK               string                                     `json:"cik"`
	Ticker            string                                     `json:"ticker"`
	FiscalYear        int                                        `json:"fiscal_year"`
	FiscalPeriod      string                                     `json:"fiscal_period"` // "FY", "Q1", ...
	Cadence           models.Cadence                             `json:"cadence"`
	DocumentPeriodEnd string                                     `json:"document_period_end"` // YYYY-MM-DD
	Facts             []models.Fact                              `json:"facts"`
	Layouts           map[models.StatementKind][]models.StatementRow `json:"layouts"`
}

func main() {
	fixturePath := flag.String("facts", "testdata/tsla_10q.json", "path to extracted facts fixture")
	maxColumns := flag.Int("columns", 2, "statement columns to display")
	periodConfig := flag.String("period-config", "", "optional YAML period selection config")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := run(log, *fixturePath, *maxColumns, *periodConfig); err != nil {
		log.Fatalw("demo failed", "error", err)
	}
}

func run(log *zap.SugaredLogger, fixturePath string, maxColumns int, periodConfigPath string) error {
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	docEnd, err := time.Parse(models.DateLayout, fx.DocumentPeriodEnd)
	if err != nil {
		return fmt.Errorf("parse document_period_end: %w", err)
	}

	mappingStore, err := standardize.DefaultMappingStore(standardize.WithLogger(log))
	if err != nil {
		return fmt.Errorf("load mapping store: %w", err)
	}
	for _, c := range mappingStore.Companies() {
		log.Infow("company mapping layer loaded",
			"entity", c.EntityIdentifier, "name", c.CompanyName, "concepts", c.ConceptCount)
	}

	cfg := periods.DefaultConfig()
	if periodConfigPath != "" {
		cfg, err = periods.LoadConfig(periodConfigPath)
		if err != nil {
			return err
		}
	}
	selector := periods.NewSelector(cfg, periods.WithLogger(log))
	assembler := statement.NewAssembler(standardize.NewConceptMapper(mappingStore), statement.WithLogger(log))

	// Optional DB-backed cache; files otherwise
	ctx := context.Background()
	var cache *store.StatementCache
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			return fmt.Errorf("init db: %w", err)
		}
		defer store.Close()
	}
	cache, err = store.NewStatementCache(store.GetPool(), "")
	if err != nil {
		return err
	}

	for kind, layout := range fx.Layouts {
		cadence := fx.Cadence
		req := periods.Request{MaxColumns: maxColumns, DocumentPeriodEnd: docEnd}
		candidates := selector.Select(fx.Facts, kind, cadence, req)
		log.Infow("period candidates selected", "kind", kind, "candidates", len(candidates))

		st := assembler.Build(kind, layout, fx.Facts, candidates, maxColumns)
		printStatement(st)

		if err := cache.Put(ctx, store.Entry{
			CIK:          fx.CIK,
			Ticker:       fx.Ticker,
			FiscalYear:   fx.FiscalYear,
			FiscalPeriod: fx.FiscalPeriod,
			Statement:    st,
		}); err != nil {
			log.Warnw("statement cache write failed", "kind", kind, "error", err)
		}
	}
	return nil
}

func printStatement(st *models.Statement) {
	fmt.Printf("\n%s (build %s)\n", st.Kind, st.BuildID)
	fmt.Printf("%-50s", "")
	for _, col := range st.Columns {
		fmt.Printf("%22s", col.Label)
	}
	fmt.Println()
	for _, row := range st.Rows {
		indent := ""
		for i := 0; i < row.Level; i++ {
			indent += "  "
		}
		fmt.Printf("%-50s", indent+row.Label)
		if !row.IsAbstract {
			for _, v := range row.Values {
				if v.Missing {
					fmt.Printf("%22s", "-")
				} else {
					fmt.Printf("%22.1f", v.Value)
				}
			}
		}
		fmt.Println()
	}
}
