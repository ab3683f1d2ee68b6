package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/bunnymark"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Bunnies   uint64
	Doublings int
	Interval  time.Duration

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	FinalCount     bunnymark.BunnyCount
	UpdateTime     Stats
	Systems        []ecs.SystemStats
	Storage        *ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the end-of-run state of world into the report.
func (r *Report) Collect(world *bunnymark.World) {
	stats := world.Scheduler.GetStats()
	r.TotalUpdates = stats.Frames
	r.Systems = stats.Systems
	r.Storage = world.Storage.CollectStats()
	r.FinalCount = world.Count()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Bunnymark Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Bunnies:** {{.Bunnies}}
- **Doublings:** {{.Doublings}}
{{- if .Interval}}
- **Frame Interval:** {{.Interval}}
{{- end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Final Bunnies:** {{.FinalCount.Current}} / {{.FinalCount.Desired}}
{{- if .UpdateTime.Samples}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- end}}

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
{{if .Storage}}
## Storage
- **Entities:** {{.Storage.TotalEntityCount}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Singletons:** {{.Storage.SingletonCount}}
{{- range .Storage.ArchetypeBreakdown}}
  - {{.EntityCount}} x {{join .ComponentTypes}}
{{- end}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": func(names []string) string {
			return strings.Join(names, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
