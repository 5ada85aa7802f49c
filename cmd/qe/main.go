package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/yashagw/craneqe/internal/config"
	"github.com/yashagw/craneqe/internal/logging"
	"github.com/yashagw/craneqe/internal/plan"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/utils"
)

const (
	DefaultConfigPath = "craneqe.yaml"
)

type QueryResponse struct {
	Type    string          `json:"type"`
	RunID   string          `json:"run_id"`
	Columns []string        `json:"columns,omitempty"`
	Rows    [][]interface{} `json:"rows,omitempty"`
	Count   int             `json:"count"`
	Digest  string          `json:"digest,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Runner struct {
	cfg   *config.Config
	runID string
	root  plan.Plan
}

func NewRunner(cfg *config.Config, runID string) (*Runner, error) {
	if cfg.Query == nil {
		return nil, fmt.Errorf("config has no query")
	}
	catalog, err := plan.LoadCatalog(cfg.Tables)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	root, err := plan.NewBuilder(catalog, cfg.JoinBufferPages).Build(cfg.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}
	return &Runner{
		cfg:   cfg,
		runID: runID,
		root:  root,
	}, nil
}

func (r *Runner) Explain() string {
	return plan.Explain(r.root)
}

// Execute drains the plan and returns its rows. Each row holds one value per
// entry of Columns, in the same order, so fields sharing a name are kept.
func (r *Runner) Execute() QueryResponse {
	s, err := r.root.Open()
	if err != nil {
		return r.errorResponse(err)
	}
	defer s.Close()

	schema := s.Schema()
	layout := record.NewLayoutFromSchema(schema)
	columns := append([]string{}, schema.Fields()...)
	digest := utils.NewDigest()

	buf := make([]byte, r.cfg.PageSize)
	rows := [][]interface{}{}
	for {
		err := s.Next(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return r.errorResponse(err)
		}
		size, err := layout.RecordSize(buf)
		if err != nil {
			return r.errorResponse(err)
		}
		digest.Add(buf[:size])

		values, err := record.Decode(schema, buf[:size])
		if err != nil {
			return r.errorResponse(err)
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v.Interface()
		}
		rows = append(rows, row)
	}

	slog.Info("query finished", "rows", digest.Count(), "digest", fmt.Sprintf("%08x", digest.Sum32()))
	return QueryResponse{
		Type:    "query",
		RunID:   r.runID,
		Rows:    rows,
		Columns: columns,
		Count:   digest.Count(),
		Digest:  fmt.Sprintf("%08x", digest.Sum32()),
	}
}

func (r *Runner) errorResponse(err error) QueryResponse {
	slog.Error("query failed", "error", err)
	return QueryResponse{
		Type:  "error",
		RunID: r.runID,
		Error: err.Error(),
	}
}

func main() {
	defaultPath := os.Getenv("CRANEQE_CONFIG")
	if defaultPath == "" {
		defaultPath = DefaultConfigPath
	}
	configPath := flag.String("config", defaultPath, "path to the YAML run description")
	explain := flag.Bool("explain", true, "print the plan tree before the rows")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closeLog, err := logging.SetupLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	runID := uuid.New().String()
	slog.SetDefault(logger.With("run_id", runID))

	runner, err := NewRunner(cfg, runID)
	if err != nil {
		closeLog()
		log.Fatalf("Failed to initialize runner: %v", err)
	}

	if *explain {
		fmt.Print(runner.Explain())
	}

	response := runner.Execute()
	jsonData, err := json.Marshal(response)
	if err != nil {
		errorResp := QueryResponse{
			Type:  "error",
			RunID: runID,
			Error: fmt.Sprintf("Failed to serialize response: %v", err),
		}
		jsonData, _ = json.Marshal(errorResp)
	}
	fmt.Println(string(jsonData))

	if response.Type == "error" {
		closeLog()
		os.Exit(1)
	}
}
