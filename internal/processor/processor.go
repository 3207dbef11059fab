package processor

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"folha/internal/domain/advantage"
	"folha/internal/table"
)

// Fixed artifact file names consumed by the downstream payroll tooling.
// Renaming any of these breaks the operators' import scripts.
const (
	MilitaryDeploymentFile = "implantacao_acordo_militar_final.xlsx"
	MilitaryTraceFile      = "log_detalhado_processamento.xlsx"
	MilitaryInternalFile   = "estrutura_dados_interna.xlsx"
	MilitaryAnalysisFile   = "analise_consolidada_militares.xlsx"
	StandardDeploymentFile = "implantacao_demais_categorias.xlsx"
	StandardAnalysisFile   = "analise_demais_categorias.xlsx"
)

// Output path keys in Result.OutputPaths.
const (
	KeyDeployment = "deployment"
	KeyTrace      = "trace"
	KeyInternal   = "internal"
	KeyAnalysis   = "analysis"
)

// Options configures one processing run.
type Options struct {
	// OutputDir receives every artifact. Required.
	OutputDir string
	// Analysis controls whether the optional analysis workbook is written.
	Analysis bool
	// Log receives narrative progress lines; nil falls back to slog.
	Log func(string)
}

func (o *Options) logf() func(string) {
	if o.Log != nil {
		return o.Log
	}
	return func(msg string) { slog.Info(msg) }
}

// artifactWriter collects supporting-workbook writes for one run. Only the
// deployment file may fail a run; trace, internal-structure and analysis
// failures turn into warnings so the operators still get the file they
// actually import.
type artifactWriter struct {
	paths    map[string]string
	warnings []string
	logf     func(string)
}

func (w *artifactWriter) write(key, label, path string, sheets ...table.Sheet) {
	if err := table.WriteXLSX(path, sheets...); err != nil {
		msg := fmt.Sprintf("writing %s file failed: %v", label, err)
		w.logf(msg)
		w.warnings = append(w.warnings, msg)
		return
	}
	w.paths[key] = path
}

// RunMilitary executes the military-agreement pipeline: consolidate the
// standard sources, fold in the magisterio lookup hours, classify against
// the double ceiling and write the four artifacts.
func RunMilitary(sources []advantage.Source, opts Options) Result {
	logf := opts.logf()
	engine := advantage.NewEngine(advantage.VariantMilitary, logf)

	c, err := engine.Consolidate(sources)
	if err != nil {
		return errorResult(fmt.Sprintf("consolidation failed: %v", err))
	}
	magisterio := engine.BuildMagisterio(sources)
	rows := engine.OutputRows(c, magisterio)

	w := &artifactWriter{paths: map[string]string{}, logf: logf}

	deployment := engine.DeploymentTable(rows)
	deploymentPath := filepath.Join(opts.OutputDir, MilitaryDeploymentFile)
	if err := table.WriteXLSX(deploymentPath, table.Sheet{Name: "Deployment", Table: deployment}); err != nil {
		return errorResult(fmt.Sprintf("writing deployment file: %v", err))
	}
	w.paths[KeyDeployment] = deploymentPath
	logf(fmt.Sprintf("deployment file written: %d of %d rows deployable", len(deployment.Rows), len(rows)))

	w.write(KeyTrace, "trace", filepath.Join(opts.OutputDir, MilitaryTraceFile),
		table.Sheet{Name: "Trace", Table: advantage.TraceTable(c.Trace)})
	w.write(KeyInternal, "internal structure", filepath.Join(opts.OutputDir, MilitaryInternalFile),
		table.Sheet{Name: "Internal Structure", Table: engine.InternalStructureTable(rows)})

	if opts.Analysis {
		w.write(KeyAnalysis, "analysis", filepath.Join(opts.OutputDir, MilitaryAnalysisFile),
			table.Sheet{Name: "Deployment", Table: deployment},
			table.Sheet{Name: "Detail", Table: engine.DetailTable(rows)},
			table.Sheet{Name: "Employee Summary", Table: engine.EmployeeSummary(rows)},
			table.Sheet{Name: "Code Summary", Table: engine.CodeSummary(rows)},
		)
	}

	return Result{
		Status:      StatusSuccess,
		Message:     runMessage(len(c.Employees), len(rows), len(deployment.Rows)),
		Warnings:    w.warnings,
		OutputPaths: w.paths,
	}
}

// RunStandard executes the civilian-category pipeline: single hour ceiling,
// no monetary column, no magisterio credit.
func RunStandard(sources []advantage.Source, opts Options) Result {
	logf := opts.logf()
	engine := advantage.NewEngine(advantage.VariantStandard, logf)

	c, err := engine.Consolidate(sources)
	if err != nil {
		return errorResult(fmt.Sprintf("consolidation failed: %v", err))
	}
	rows := engine.OutputRows(c, nil)

	w := &artifactWriter{paths: map[string]string{}, logf: logf}

	deployment := engine.DeploymentTable(rows)
	deploymentPath := filepath.Join(opts.OutputDir, StandardDeploymentFile)
	if err := table.WriteXLSX(deploymentPath, table.Sheet{Name: "Deployment", Table: deployment}); err != nil {
		return errorResult(fmt.Sprintf("writing deployment file: %v", err))
	}
	w.paths[KeyDeployment] = deploymentPath
	logf(fmt.Sprintf("deployment file written: %d of %d rows deployable", len(deployment.Rows), len(rows)))

	if opts.Analysis {
		w.write(KeyAnalysis, "analysis", filepath.Join(opts.OutputDir, StandardAnalysisFile),
			table.Sheet{Name: "Detail", Table: engine.DetailTable(rows)},
			table.Sheet{Name: "Employee Summary", Table: engine.EmployeeSummary(rows)},
		)
	}

	return Result{
		Status:      StatusSuccess,
		Message:     runMessage(len(c.Employees), len(rows), len(deployment.Rows)),
		Warnings:    w.warnings,
		OutputPaths: w.paths,
	}
}

func runMessage(employees, entries, deployable int) string {
	return fmt.Sprintf("processed %d employees, %d entries, %d deployable", employees, entries, deployable)
}
