package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/meera/rfmscope/backend/internal/config"
	"github.com/meera/rfmscope/backend/internal/ingest"
	"github.com/meera/rfmscope/backend/internal/report"
	"github.com/meera/rfmscope/backend/internal/rfm"
	"github.com/meera/rfmscope/backend/internal/store"
)

const (
	apiVersion     = "1.0.0"
	exportFilename = "rfm_analysis_results.csv"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger *slog.Logger
	store  store.Store
	cfg    config.AnalysisConfig
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, st store.Store, cfg config.AnalysisConfig) *APIHandlers {
	return &APIHandlers{
		logger: logger,
		store:  st,
		cfg:    cfg,
	}
}

func (h *APIHandlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "RFM Analytics API",
		"version": apiVersion,
	})
}

// handleUpload runs the whole pipeline synchronously: parse, normalize,
// validate, analyze, then swap the store in one step. On any failure the
// previous result stays untouched.
func (h *APIHandlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	table, err := ingest.ReadTable(header.Filename, data)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	mapping, err := ingest.MapColumns(table.Headers)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	records, rejections, err := ingest.ValidateRows(table, mapping)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	result, err := rfm.Analyze(records)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	result.RejectedRows = len(rejections)
	result.SourceFile = header.Filename

	h.store.Replace(result)

	h.logger.Info("dataset analyzed",
		"filename", header.Filename,
		"rows", len(table.Rows),
		"customers", len(result.Customers),
		"rejected", len(rejections),
	)

	respondJSON(w, http.StatusOK, uploadResponse{
		Message:      "File uploaded and processed successfully",
		Rows:         len(table.Rows),
		Customers:    len(result.Customers),
		RejectedRows: len(rejections),
		Filename:     header.Filename,
	})
}

func (h *APIHandlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, ok := h.currentResult(w)
	if !ok {
		return
	}

	summary := report.BuildSummary(result)
	respondJSON(w, http.StatusOK, summaryResponse{
		TotalCustomers:  summary.TotalCustomers,
		TotalRevenue:    summary.TotalRevenue,
		TotalSegments:   summary.TotalSegments,
		TopSegment:      summary.TopSegment,
		TopSegmentCount: summary.TopSegmentCount,
		AvgRecency:      summary.AvgRecency,
		AvgFrequency:    summary.AvgFrequency,
		AvgMonetary:     summary.AvgMonetary,
		SegmentCounts:   summary.SegmentCounts,
	})
}

func (h *APIHandlers) handleDistribution(w http.ResponseWriter, r *http.Request) {
	result, ok := h.currentResult(w)
	if !ok {
		return
	}

	dist := report.BuildDistribution(result)
	resp := distributionResponse{
		SegmentDistribution: make([]segmentShareResponse, 0, len(dist.Segments)),
		RevenueBySegment:    make([]segmentRevenueResponse, 0, len(dist.Revenue)),
		ScoreDistribution:   make([]scoreBucketResponse, 0, len(dist.Scores)),
	}
	for _, share := range dist.Segments {
		resp.SegmentDistribution = append(resp.SegmentDistribution, segmentShareResponse{
			Segment:    share.Segment,
			Count:      share.Count,
			Percentage: share.Percentage,
		})
	}
	for _, revenue := range dist.Revenue {
		resp.RevenueBySegment = append(resp.RevenueBySegment, segmentRevenueResponse{
			Segment: revenue.Segment,
			Revenue: revenue.Revenue,
		})
	}
	for _, bucket := range dist.Scores {
		resp.ScoreDistribution = append(resp.ScoreDistribution, scoreBucketResponse{
			Score: bucket.Score,
			Count: bucket.Count,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleInsights(w http.ResponseWriter, r *http.Request) {
	result, ok := h.currentResult(w)
	if !ok {
		return
	}

	insights := report.BuildInsights(result)
	top := report.TopCustomers(result, h.cfg.TopCustomers)

	resp := insightsResponse{
		Insights:     make([]insightResponse, 0, len(insights)),
		TopCustomers: make([]topCustomerResponse, 0, len(top)),
	}
	for _, insight := range insights {
		resp.Insights = append(resp.Insights, insightResponse{
			Segment:        insight.Segment,
			Count:          insight.Count,
			Revenue:        insight.Revenue,
			Percentage:     insight.Percentage,
			Recommendation: insight.Recommendation,
			Icon:           insight.Icon,
		})
	}
	for _, c := range top {
		resp.TopCustomers = append(resp.TopCustomers, topCustomerResponse{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			Monetary:     c.Monetary.InexactFloat64(),
			Frequency:    c.Frequency,
			Recency:      c.RecencyDays,
			Segment:      c.Segment,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleScatterData(w http.ResponseWriter, r *http.Request) {
	result, ok := h.currentResult(w)
	if !ok {
		return
	}

	scatter := report.BuildScatter(result, h.cfg.ScatterCap)
	resp := scatterResponse{
		Data:            make([]scatterPointResponse, 0, len(scatter.Points)),
		TotalPoints:     scatter.TotalPoints,
		DisplayedPoints: scatter.DisplayedPoints,
	}
	for _, p := range scatter.Points {
		resp.Data = append(resp.Data, scatterPointResponse{
			Recency:   p.Recency,
			Frequency: p.Frequency,
			Monetary:  p.Monetary,
			Segment:   p.Segment,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.currentResult(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+exportFilename+"\"")
	if err := report.ExportCSV(w, result); err != nil {
		// Headers are already on the wire; the most we can do is log.
		h.logger.Error("csv export failed", "error", err)
	}
}

func (h *APIHandlers) currentResult(w http.ResponseWriter) (*rfm.AnalysisResult, bool) {
	result, err := h.store.Current()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return result, true
}

func (h *APIHandlers) writeUploadError(w http.ResponseWriter, err error) {
	var schemaErr *rfm.SchemaError
	switch {
	case errors.As(err, &schemaErr),
		errors.Is(err, rfm.ErrEmptyDataset),
		errors.Is(err, rfm.ErrUnsupportedFileType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("upload processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process file")
	}
}

// --- Response DTOs ---

type uploadResponse struct {
	Message      string `json:"message"`
	Rows         int    `json:"rows"`
	Customers    int    `json:"customers"`
	RejectedRows int    `json:"rejected_rows"`
	Filename     string `json:"filename"`
}

type summaryResponse struct {
	TotalCustomers  int            `json:"total_customers"`
	TotalRevenue    float64        `json:"total_revenue"`
	TotalSegments   int            `json:"total_segments"`
	TopSegment      string         `json:"top_segment"`
	TopSegmentCount int            `json:"top_segment_count"`
	AvgRecency      float64        `json:"avg_recency"`
	AvgFrequency    float64        `json:"avg_frequency"`
	AvgMonetary     float64        `json:"avg_monetary"`
	SegmentCounts   map[string]int `json:"segment_counts"`
}

type segmentShareResponse struct {
	Segment    string  `json:"segment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type segmentRevenueResponse struct {
	Segment string  `json:"segment"`
	Revenue float64 `json:"revenue"`
}

type scoreBucketResponse struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type distributionResponse struct {
	SegmentDistribution []segmentShareResponse   `json:"segment_distribution"`
	RevenueBySegment    []segmentRevenueResponse `json:"revenue_by_segment"`
	ScoreDistribution   []scoreBucketResponse    `json:"score_distribution"`
}

type insightResponse struct {
	Segment        string  `json:"segment"`
	Count          int     `json:"count"`
	Revenue        float64 `json:"revenue"`
	Percentage     float64 `json:"percentage"`
	Recommendation string  `json:"recommendation"`
	Icon           string  `json:"icon"`
}

type topCustomerResponse struct {
	CustomerID   string  `json:"customerid"`
	CustomerName string  `json:"customername,omitempty"`
	Monetary     float64 `json:"monetary"`
	Frequency    int     `json:"frequency"`
	Recency      int     `json:"recency"`
	Segment      string  `json:"segment"`
}

type insightsResponse struct {
	Insights     []insightResponse     `json:"insights"`
	TopCustomers []topCustomerResponse `json:"top_customers"`
}

type scatterPointResponse struct {
	Recency   int     `json:"recency"`
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
	Segment   string  `json:"segment"`
}

type scatterResponse struct {
	Data            []scatterPointResponse `json:"data"`
	TotalPoints     int                    `json:"total_points"`
	DisplayedPoints int                    `json:"displayed_points"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
