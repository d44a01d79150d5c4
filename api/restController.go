// Package api exposes the REST surface. Handlers stay thin: bind, call the
// model or service, translate the error, encode JSON.
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chromaqa/reports_backend/analytics"
	"github.com/chromaqa/reports_backend/auth"
	"github.com/chromaqa/reports_backend/checklists"
	"github.com/chromaqa/reports_backend/comparison"
	"github.com/chromaqa/reports_backend/config"
	"github.com/chromaqa/reports_backend/models"
	"github.com/chromaqa/reports_backend/photos"
	"github.com/chromaqa/reports_backend/reminders"
	"github.com/chromaqa/reports_backend/utils"
	"github.com/chromaqa/reports_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "api"

// Controller wires the HTTP routes to the domain services.
type Controller struct {
	db        *gorm.DB
	cfg       config.Config
	logger    *logrus.Logger
	engine    *workflow.Engine
	photoSvc  *photos.Service
	reminders *reminders.Service
	generator models.SummaryGenerator
}

func NewController(
	db *gorm.DB,
	cfg config.Config,
	logger *logrus.Logger,
	engine *workflow.Engine,
	photoSvc *photos.Service,
	reminderSvc *reminders.Service,
	generator models.SummaryGenerator,
) *Controller {
	return &Controller{
		db:        db,
		cfg:       cfg,
		logger:    logger,
		engine:    engine,
		photoSvc:  photoSvc,
		reminders: reminderSvc,
		generator: generator,
	}
}

// Register mounts all routes under /api.
func (ctl *Controller) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/schools", ctl.listSchools)
	api.POST("/schools", ctl.createSchool)
	api.GET("/schools/regions", ctl.listRegions)
	api.GET("/schools/:id", ctl.getSchool)
	api.PUT("/schools/:id", ctl.updateSchool)
	api.DELETE("/schools/:id", ctl.deleteSchool)
	api.GET("/schools/:id/trend", ctl.schoolTrend)
	api.GET("/schools/:id/trend/export", ctl.exportSchoolTrend)

	api.GET("/reports", ctl.listReports)
	api.POST("/reports", ctl.createReport)
	api.GET("/reports/:id", ctl.getReport)
	api.PUT("/reports/:id", ctl.updateReport)
	api.DELETE("/reports/:id", ctl.deleteReport)

	api.GET("/reports/:id/responses", ctl.getResponses)
	api.PUT("/reports/:id/responses", ctl.saveResponses)
	api.GET("/reports/:id/progress", ctl.reportProgress)

	api.POST("/reports/:id/workflow/:action", ctl.applyWorkflowAction)
	api.GET("/reports/:id/comments", ctl.listWorkflowComments)

	api.GET("/reports/:id/comparison", ctl.photoComparison)
	api.GET("/reports/:id/photos", ctl.listPhotos)
	api.POST("/reports/:id/photos", ctl.attachPhoto)
	api.DELETE("/photos/:id", ctl.removePhoto)
	api.GET("/photos/locations", ctl.locationPresets)

	api.POST("/reports/:id/summary", ctl.generateSummary)
	api.GET("/reports/:id/summary", ctl.getSummary)

	api.GET("/checklists/:type", ctl.getChecklist)
	api.GET("/checklists/:type/sections", ctl.getChecklistSections)

	api.GET("/analytics/company", ctl.companyStats)
	api.GET("/analytics/regional", ctl.regionalComparison)

	api.GET("/reminders/due", ctl.dueSchools)
	api.GET("/reminders/overdue", ctl.overdueSchools)

	api.POST("/location/verify", ctl.verifyLocation)
}

// actorFrom resolves the caller identity set by the gateway. The service runs
// behind an authenticating proxy that injects these headers; there is no
// session handling here.
func actorFrom(c *gin.Context) auth.Context {
	userID, _ := strconv.Atoi(c.GetHeader("x-user-id"))
	var caps []auth.Capability
	for _, raw := range strings.Split(c.GetHeader("x-user-capabilities"), ",") {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			caps = append(caps, auth.Capability(raw))
		}
	}
	return auth.NewStaticContext(userID, caps...)
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func (ctl *Controller) writeError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var invalidState *models.InvalidStateError
	var missingFeedback *models.MissingFeedbackError
	var denied *models.PermissionDeniedError
	var validation *models.ValidationError
	var external *models.ExternalServiceError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &missingFeedback), errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &external):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		config.LogError(ctl.logger, moduleName, "writeError", c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// ---- schools ----

func (ctl *Controller) listSchools(c *gin.Context) {
	q := models.SchoolQuery{
		Status: models.SchoolStatus(c.Query("status")),
		Region: c.Query("region"),
	}
	q.Limit, _ = strconv.Atoi(c.Query("limit"))
	q.Offset, _ = strconv.Atoi(c.Query("offset"))

	schools, err := models.ListSchools(ctl.db, q)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schools": schools})
}

func (ctl *Controller) createSchool(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.HasCapability(auth.CapManageSchools) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "create_school"})
		return
	}
	var school models.School
	if err := c.ShouldBindJSON(&school); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := utils.ValidateStruct(&school); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	if err := models.CreateSchool(ctl.db, &school); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (ctl *Controller) getSchool(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	school, err := models.GetSchoolById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (ctl *Controller) updateSchool(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.HasCapability(auth.CapManageSchools) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "update_school"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	school, err := models.GetSchoolById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	if err := c.ShouldBindJSON(school); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	school.ID = id
	if err := utils.ValidateStruct(school); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	if err := models.UpdateSchool(ctl.db, school); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (ctl *Controller) deleteSchool(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.HasCapability(auth.CapManageSchools) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "delete_school"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := models.DeleteSchool(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) listRegions(c *gin.Context) {
	regions, err := models.DistinctRegions(ctl.db)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

func (ctl *Controller) schoolTrend(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = ctl.cfg.TrendLimit
	}
	trend, err := analytics.GetSchoolTrend(ctl.db, id, limit)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (ctl *Controller) exportSchoolTrend(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=trend-"+strconv.Itoa(id)+".xlsx")
	if err := analytics.ExportSchoolTrend(c.Writer, ctl.db, id); err != nil {
		ctl.writeError(c, err)
	}
}

// ---- reports ----

func (ctl *Controller) listReports(c *gin.Context) {
	q := models.ReportQuery{
		ReportType: models.ReportType(c.Query("type")),
		Status:     models.ReportStatus(c.Query("status")),
		OrderBy:    c.Query("order_by"),
		Ascending:  c.Query("order") == "asc",
	}
	q.SchoolID, _ = strconv.Atoi(c.Query("school_id"))
	q.UserID, _ = strconv.Atoi(c.Query("user_id"))
	q.Limit, _ = strconv.Atoi(c.Query("limit"))
	q.Offset, _ = strconv.Atoi(c.Query("offset"))

	reports, err := models.ListReports(ctl.db, q)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (ctl *Controller) createReport(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.HasCapability(auth.CapCreateReports) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "create_report"})
		return
	}
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	report.UserID = actor.CurrentUserID()
	if err := utils.ValidateStruct(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	if report.PreviousReportID == nil {
		// Default the comparison baseline to the school's latest approved visit.
		latest, err := models.LatestApprovedReport(ctl.db, report.SchoolID)
		if err == nil && latest != nil {
			report.PreviousReportID = &latest.ID
		}
	}
	if err := models.CreateReport(ctl.db, &report); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (ctl *Controller) getReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (ctl *Controller) updateReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := actorFrom(c)
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	if report.UserID != actor.CurrentUserID() && !actor.HasCapability(auth.CapEditAllReports) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "update_report"})
		return
	}
	var patch struct {
		OverallRating *models.OverallRating `json:"overall_rating"`
		ClosingNotes  *string               `json:"closing_notes"`
		InspectionDate *time.Time           `json:"inspection_date"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if patch.OverallRating != nil {
		report.OverallRating = *patch.OverallRating
	}
	if patch.ClosingNotes != nil {
		report.ClosingNotes = *patch.ClosingNotes
	}
	if patch.InspectionDate != nil {
		report.InspectionDate = *patch.InspectionDate
	}
	if err := models.UpdateReport(ctl.db, report); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (ctl *Controller) deleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := actorFrom(c)
	if !actor.HasCapability(auth.CapEditAllReports) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "delete_report"})
		return
	}
	if err := models.DeleteReport(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- responses ----

func (ctl *Controller) getResponses(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.GetReportById(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	grouped, err := models.GetResponsesGrouped(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report_id": id, "sections": grouped})
}

func (ctl *Controller) saveResponses(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := actorFrom(c)
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	if report.UserID != actor.CurrentUserID() && !actor.HasCapability(auth.CapEditAllReports) {
		ctl.writeError(c, &models.PermissionDeniedError{UserID: actor.CurrentUserID(), Action: "save_responses"})
		return
	}
	var body struct {
		Responses []models.ResponseInput `json:"responses"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := models.BulkSaveResponses(ctl.db, id, body.Responses); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report_id": id, "saved": len(body.Responses)})
}

func (ctl *Controller) reportProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	stats, err := checklists.GetProgressStats(ctl.db, id, report.ReportType)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ---- workflow ----

func (ctl *Controller) applyWorkflowAction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body struct {
		Comment string `json:"comment"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}
	action := models.WorkflowAction(c.Param("action"))
	report, err := ctl.engine.Apply(c.Request.Context(), actorFrom(c), id, action, body.Comment)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (ctl *Controller) listWorkflowComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.GetReportById(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	comments, err := models.GetWorkflowComments(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	type commentEntry struct {
		models.WorkflowComment
		ActionLabel string `json:"action_label"`
	}
	entries := make([]commentEntry, 0, len(comments))
	for _, comment := range comments {
		entries = append(entries, commentEntry{WorkflowComment: comment, ActionLabel: comment.ActionLabel()})
	}
	c.JSON(http.StatusOK, gin.H{"report_id": id, "comments": entries})
}

// ---- photos & comparison ----

func (ctl *Controller) photoComparison(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	if report.PreviousReportID == nil {
		c.JSON(http.StatusOK, gin.H{"report_id": id, "pairs": []comparison.Pair{}, "orphaned": []comparison.OrphanedPhoto{}, "summary": comparison.Summary{}})
		return
	}
	pairs, err := comparison.GetComparisonPairs(ctl.db, id, *report.PreviousReportID)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	orphaned, err := comparison.GetOrphanedPreviousPhotos(ctl.db, id, *report.PreviousReportID)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	summary, err := comparison.GetComparisonSummary(ctl.db, id, *report.PreviousReportID)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report_id": id, "pairs": pairs, "orphaned": orphaned, "summary": summary})
}

func (ctl *Controller) listPhotos(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.GetReportById(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	var (
		photos []models.Photo
		err    error
	)
	if itemKey := c.Query("item_key"); itemKey != "" {
		photos, err = models.GetPhotosByItem(ctl.db, id, itemKey)
	} else {
		photos, err = models.GetPhotosByReport(ctl.db, id)
	}
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report_id": id, "photos": photos})
}

func (ctl *Controller) attachPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))
	photo, err := ctl.photoSvc.Attach(c.Request.Context(), photos.AttachInput{
		ReportID:    id,
		SectionKey:  c.PostForm("section_key"),
		ItemKey:     c.PostForm("item_key"),
		LocationTag: c.PostForm("location_tag"),
		Caption:     c.PostForm("caption"),
		Filename:    fileHeader.Filename,
		HasMarkup:   c.PostForm("has_markup") == "true",
		SortOrder:   sortOrder,
		Data:        data,
	})
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	fileURL, thumbURL := ctl.photoSvc.URLFor(photo)
	c.JSON(http.StatusCreated, gin.H{"photo": photo, "url": fileURL, "thumbnail_url": thumbURL})
}

func (ctl *Controller) removePhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.photoSvc.Remove(c.Request.Context(), id); err != nil {
		ctl.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) locationPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": comparison.LocationPresets()})
}

// ---- AI summary ----

func (ctl *Controller) generateSummary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.GetReportById(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	responses, err := models.GetResponsesByReport(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	result, err := ctl.generator.Generate(c.Request.Context(), report, responses)
	if err != nil {
		ctl.writeError(c, &models.ExternalServiceError{Service: "summary", Err: err})
		return
	}
	summary, err := models.UpsertAISummary(ctl.db, id, result)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryPayload(summary))
}

func (ctl *Controller) getSummary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.GetReportById(ctl.db, id); err != nil {
		ctl.writeError(c, err)
		return
	}
	summary, err := models.GetAISummary(ctl.db, id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary generated for this report"})
		return
	}
	c.JSON(http.StatusOK, summaryPayload(summary))
}

func summaryPayload(summary *models.AISummary) gin.H {
	return gin.H{
		"report_id":          summary.ReportID,
		"executive_summary":  summary.ExecutiveSummary,
		"issues":             summary.Issues(),
		"points_of_interest": summary.PointsOfInterest(),
		"comparison":         summary.Comparison(),
		"generated_at":       summary.GeneratedAt,
	}
}

// ---- checklists ----

func (ctl *Controller) getChecklist(c *gin.Context) {
	reportType := models.ReportType(c.Param("type"))
	if c.Query("flat") == "true" {
		// Linear item list for clients that render one long form.
		c.JSON(http.StatusOK, gin.H{"items": checklists.AllItemsFlat(reportType)})
		return
	}
	c.JSON(http.StatusOK, checklists.ChecklistForType(reportType))
}

func (ctl *Controller) getChecklistSections(c *gin.Context) {
	reportType := models.ReportType(c.Param("type"))
	c.JSON(http.StatusOK, gin.H{"sections": checklists.SectionsList(reportType)})
}

// ---- analytics ----

func (ctl *Controller) companyStats(c *gin.Context) {
	issueLimit, _ := strconv.Atoi(c.Query("issue_limit"))
	stats, err := analytics.GetCompanyStats(ctl.db, issueLimit)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ctl *Controller) regionalComparison(c *gin.Context) {
	entries, err := analytics.GetRegionalComparison(ctl.db, c.Query("region"))
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": c.Query("region"), "schools": entries})
}

// ---- reminders ----

func (ctl *Controller) dueSchools(c *gin.Context) {
	threshold := ctl.cfg.DashboardThresholdDays
	if raw := c.Query("threshold"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			threshold = n
		}
	}
	due, err := ctl.reminders.SchoolsDueForVisit(threshold)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threshold": threshold, "schools": due})
}

func (ctl *Controller) overdueSchools(c *gin.Context) {
	overdue, err := ctl.reminders.OverdueSchools()
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schools": overdue})
}

// ---- location ----

func (ctl *Controller) verifyLocation(c *gin.Context) {
	var req struct {
		SchoolID  int     `json:"school_id" binding:"required"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school_id, latitude and longitude are required"})
		return
	}
	result, err := utils.VerifyLocation(ctl.db, req.SchoolID, req.Latitude, req.Longitude)
	if err != nil {
		ctl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
