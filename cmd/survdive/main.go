// Command survdive runs the survival-analysis deep dive from the command
// line: cohort summaries, Kaplan-Meier life tables, the discrete hazard
// worked example, and Cox proportional-hazards reports.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/gdario/statistical-deep-dives/coxph"
	"github.com/gdario/statistical-deep-dives/dataset"
	"github.com/gdario/statistical-deep-dives/lifetable"
)

var (
	app      = kingpin.New("survdive", "Survival analysis deep dive: Kaplan-Meier curves, hazard tables, and Cox regression on right-censored cohorts.")
	logLevel = app.Flag("log", "Log level: debug, info, warn, error.").Default("info").String()

	dataPath  = app.Flag("data", "Cohort CSV file.").Default("data/gbsg.csv").String()
	timeVar   = app.Flag("time", "Follow-up time column.").Default("rfstime").String()
	statusVar = app.Flag("status", "Event indicator column.").Default("status").String()
	floatVars = app.Flag("float", "Comma-separated numeric covariate columns.").Default("age,meno,size,grade,nodes,pgr,er,hormon").String()
	strVars   = app.Flag("str", "Comma-separated categorical covariate columns.").Default("").String()

	describeCmd = app.Command("describe", "Summarize the cohort columns and their correlations.")

	kmCmd       = app.Command("km", "Print the Kaplan-Meier life table.")
	kmOut       = kmCmd.Flag("out", "Write the survival curve step points to this CSV file.").String()
	kmCensoring = kmCmd.Flag("censoring", "Estimate the censoring distribution instead (reversed status).").Bool()

	hazardCmd    = app.Command("hazard", "Print the discrete hazard-rate table for the 18-subject remission example.")
	hazardCohort = hazardCmd.Flag("cohort", "Use the cohort CSV instead of the built-in example.").Bool()

	coxCmd      = app.Command("cox", "Fit a Cox proportional-hazards model and print the report.")
	coxFormula  = coxCmd.Flag("formula", "Covariate formula.").Default("age + size + grade + nodes").String()
	coxWeight   = coxCmd.Flag("weight", "Case-weight column.").String()
	coxCenter   = coxCmd.Flag("center", "Mean-center the covariates before fitting.").Bool()
	coxNorm     = coxCmd.Flag("norm", "Scale the covariates before fitting.").Bool()
	coxL2       = coxCmd.Flag("l2", "Ridge penalty weight.").Default("0").Float64()
	coxRidge    = coxCmd.Flag("ridge", "Comma-separated L2 grid; fits the whole path.").String()
	coxKnockoff = coxCmd.Flag("knockoff", "Screen the covariates with the knockoff filter.").Bool()
	coxSeed     = coxCmd.Flag("seed", "Random seed for the knockoff construction.").Default("323849").Int64()
)

func loadCohort(log *logrus.Logger) *dataset.Cohort {

	sc := dataset.Schema{
		Time:    *timeVar,
		Status:  *statusVar,
		Float64: splitList(*floatVars),
		String:  splitList(*strVars),
	}

	c, err := dataset.Load(*dataPath, sc)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("loaded %s", c)

	return c
}

func splitList(s string) []string {
	var va []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			va = append(va, v)
		}
	}
	return va
}

func describe(log *logrus.Logger) {

	c := loadCohort(log)

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Variable", "N", "Mean", "SD", "Min", "Max"})
	for _, s := range c.Describe() {
		tbl.Append([]string{
			s.Name,
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.Mean, 'f', 3, 64),
			strconv.FormatFloat(s.SD, 'f', 3, 64),
			strconv.FormatFloat(s.Min, 'f', 1, 64),
			strconv.FormatFloat(s.Max, 'f', 1, 64),
		})
	}
	tbl.Render()

	corr, names, err := c.CorrelationMatrix()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nCorrelations:")
	ct := tablewriter.NewWriter(os.Stdout)
	ct.SetHeader(append([]string{""}, names...))
	for i, na := range names {
		row := []string{na}
		for j := range names {
			row = append(row, strconv.FormatFloat(corr.At(i, j), 'f', 2, 64))
		}
		ct.Append(row)
	}
	ct.Render()
}

func renderLifeTable(t *lifetable.Table) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Time", "At risk", "Events", "Censored", "Survival", "Cum hazard"})
	for _, r := range t.Rows {
		tbl.Append([]string{
			strconv.FormatFloat(r.Time, 'f', 1, 64),
			strconv.Itoa(r.AtRisk),
			strconv.Itoa(r.Events),
			strconv.Itoa(r.Censored),
			strconv.FormatFloat(r.SurvProb, 'f', 4, 64),
			strconv.FormatFloat(r.CumHazard, 'f', 4, 64),
		})
	}
	tbl.Render()
	fmt.Printf("%d events, %d censored\n", t.TotalEvents, t.TotalCensored)
}

func km(log *logrus.Logger) {

	c := loadCohort(log)
	if *kmCensoring {
		c = c.ReverseStatus()
	}

	t, err := lifetable.New(c)
	if err != nil {
		log.Fatal(err)
	}
	renderLifeTable(t)

	if *kmOut != "" {
		fid, err := os.Create(*kmOut)
		if err != nil {
			log.Fatal(err)
		}
		defer fid.Close()

		times, probs := t.EventTimes()
		if err := lifetable.WriteCurve(fid, times, probs); err != nil {
			log.Fatal(err)
		}
		log.Infof("wrote step points to %s", *kmOut)
	}
}

func hazard(log *logrus.Logger) {

	var c *dataset.Cohort
	if *hazardCohort {
		c = loadCohort(log)
	} else {
		c = dataset.Remission()
	}

	t, err := lifetable.New(c)
	if err != nil {
		log.Fatal(err)
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Interval", "Width", "At risk", "Events", "Hazard"})
	for _, h := range t.Hazard() {
		iv := fmt.Sprintf("[%.0f, inf)", h.Start)
		width := "-"
		if !math.IsNaN(h.Width) {
			iv = fmt.Sprintf("[%.0f, %.0f)", h.Start, h.End)
			width = strconv.FormatFloat(h.Width, 'f', 0, 64)
		}
		rate := "-"
		if !math.IsNaN(h.Rate) {
			rate = strconv.FormatFloat(h.Rate, 'f', 5, 64)
		}
		tbl.Append([]string{
			iv,
			width,
			strconv.Itoa(h.AtRisk),
			strconv.Itoa(h.Events),
			rate,
		})
	}
	tbl.Render()
}

func cox(log *logrus.Logger) {

	c := loadCohort(log)
	if *coxCenter {
		c = c.Center()
	}

	m, err := coxph.New(c, coxph.Config{
		Formula: *coxFormula,
		Weight:  *coxWeight,
		Norm:    *coxNorm,
		L2:      *coxL2,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *coxRidge != "" {
		var grid []float64
		for _, s := range splitList(*coxRidge) {
			w, err := strconv.ParseFloat(s, 64)
			if err != nil {
				log.Fatalf("bad ridge weight %q", s)
			}
			grid = append(grid, w)
		}
		path, err := m.RidgePath(grid)
		if err != nil {
			log.Fatal(err)
		}
		coxph.RenderPath(os.Stdout, path)
		return
	}

	if *coxKnockoff {
		rows, err := m.Knockoff(*coxSeed, *coxL2)
		if err != nil {
			log.Fatal(err)
		}
		coxph.RenderScreen(os.Stdout, rows)
		return
	}

	r, err := m.Fit()
	if err != nil {
		log.Fatal(err)
	}
	r.Render(os.Stdout)
}

func main() {

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	switch cmd {
	case describeCmd.FullCommand():
		describe(log)
	case kmCmd.FullCommand():
		km(log)
	case hazardCmd.FullCommand():
		hazard(log)
	case coxCmd.FullCommand():
		cox(log)
	}
}
