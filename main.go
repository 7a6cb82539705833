package main

import (
	"os"

	"football-stats/config"
	"football-stats/models"
	"football-stats/services"
	"football-stats/storage"
	"football-stats/utils"
)

func main() {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("Unknown log level %q, keeping info", cfg.LogLevel)
	}

	scheme, err := services.SchemeByName(cfg.KeyScheme)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logger.Info("=== Football statistics starting ===")
	logger.Info("Config: data dir: %s | key scheme: %s | years: %d–%d",
		cfg.DataDir, scheme.Name, cfg.YearFrom, cfg.YearTo)

	loader := storage.NewLoader(logger)
	dataset, err := loader.LoadDataset(cfg.ResultsPath(), cfg.GoalscorersPath(), cfg.ShootoutsPath())
	if err != nil {
		logger.Error("Failed to load input: %v", err)
		os.Exit(1)
	}

	insightSvc := services.NewInsightService(logger, cfg.YearFrom, cfg.YearTo)
	pipeline := services.NewPipeline(logger, scheme, insightSvc)

	report, err := pipeline.Run(dataset)
	if err != nil {
		logger.Error("Pipeline aborted: %v", err)
		os.Exit(1)
	}

	insightSvc.Print(os.Stdout, report)

	if cfg.RejectsPath != "" {
		writeRejects(cfg.RejectsPath, report.Quality, logger)
	}
	if cfg.ReportDriver != "" {
		writeReport(cfg.ReportDriver, cfg.SinkDSN(), report, logger)
	}
}

// writeRejects saves dropped rows for auditing. Failures are logged only.
func writeRejects(path string, quality []models.QualityReport, logger *utils.Logger) {
	var w storage.RejectionWriter
	w, err := storage.NewRejectsWriter(path)
	if err != nil {
		logger.Error("Failed to create rejects file: %v", err)
		return
	}
	defer w.Close()

	total := 0
	for _, q := range quality {
		if err := w.WriteRejected(q.Rejected); err != nil {
			logger.Error("Rejects write failed: %v", err)
			return
		}
		total += len(q.Rejected)
	}
	logger.Info("Wrote %d rejected rows to %s", total, path)
}

// writeReport stores the report in the configured database. Failures are logged only.
func writeReport(driver, dsn string, report *models.Report, logger *utils.Logger) {
	var sink storage.ReportWriter
	sink, err := storage.NewSQLReportWriter(driver, dsn, logger)
	if err != nil {
		logger.Error("Failed to open report sink: %v", err)
		return
	}
	defer sink.Close()

	runID, err := sink.Write(report)
	if err != nil {
		logger.Error("Report sink write failed: %v", err)
		return
	}
	logger.Info("Report stored in %s (run %s)", driver, runID)
}
