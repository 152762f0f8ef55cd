package handler

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/innovators-table/followup-assistant/errors"
	dto "github.com/innovators-table/followup-assistant/internal/adapter/dto/followup"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/internal/usecase/followup"
	pkgvalidator "github.com/innovators-table/followup-assistant/pkg/validator"
)

// FollowupController handles booklet generation runs
type FollowupController struct {
	svc    *followup.Service
	logger *zap.Logger
}

// NewFollowupController creates a new followup controller
func NewFollowupController(svc *followup.Service, logger *zap.Logger) *FollowupController {
	return &FollowupController{svc: svc, logger: logger}
}

// Generate starts a processing run from inline attendee rows
func (fc *FollowupController) Generate(c echo.Context) error {
	var req dto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(fc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(fc.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	profiles := make([]entities.AttendeeProfile, 0, len(req.Attendees))
	for _, row := range req.Attendees {
		profiles = append(profiles, entities.AttendeeProfile{
			Name:             strings.TrimSpace(row.FirstName + " " + row.LastName),
			Company:          row.Company,
			Industry:         row.Industry,
			Role:             row.Role,
			CompanySolves:    row.CompanySolves,
			BiggestChallenge: row.BiggestChallenge,
			Superpower:       row.Superpower,
		})
	}

	run, err := fc.svc.Generate(c.Request().Context(), followup.GenerateInput{
		Roster:       followup.BuildRosterFromProfiles(profiles),
		Transcript:   req.Transcript,
		RecordingURL: req.RecordingURL,
		EventDate:    req.EventDate,
	})
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, dto.NewRunResponse(run))
}

// GenerateCSV starts a processing run from an uploaded RSVP CSV. The
// request is multipart: "file" holds the CSV, "transcript" and
// "event_date" come as form fields.
func (fc *FollowupController) GenerateCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(fc.logger, c, errors.ErrInvalidArgument("CSV file is required"))
	}

	eventDate := c.FormValue("event_date")
	if !pkgvalidator.ValidEventDate(eventDate) {
		return HandleError(fc.logger, c, errors.ErrInvalidArgument("event_date must be in MM_DD format"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(fc.logger, c, errors.ErrInternal(err))
	}
	defer file.Close()

	columns, rows, err := readAttendeeCSV(file)
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	roster, err := followup.BuildRosterFromRows(columns, rows)
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	run, err := fc.svc.Generate(c.Request().Context(), followup.GenerateInput{
		Roster:       roster,
		Transcript:   c.FormValue("transcript"),
		RecordingURL: c.FormValue("recording_url"),
		EventDate:    eventDate,
	})
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, dto.NewRunResponse(run))
}

// GetRun returns the status record of a processing run
func (fc *FollowupController) GetRun(c echo.Context) error {
	run, err := fc.svc.GetRun(c.Param("id"))
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, dto.NewRunResponse(run))
}

// Download serves a completed run's artifact as a text attachment
func (fc *FollowupController) Download(c echo.Context) error {
	run, err := fc.svc.GetRun(c.Param("id"))
	if err != nil {
		return HandleError(fc.logger, c, err)
	}
	if run.Status != entities.RunStatusCompleted || run.Artifact == "" {
		return HandleError(fc.logger, c, errors.ErrRunNotCompleted(run.ID.String()))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+run.Filename+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(run.Artifact))
}

// Publish sends a completed run's artifact to the document store
func (fc *FollowupController) Publish(c echo.Context) error {
	var req dto.PublishRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(fc.logger, c, errors.ErrInvalidPayload())
	}

	result, err := fc.svc.Publish(c.Request().Context(), c.Param("id"), req.DocumentID)
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, result)
}

// Artifacts lists booklet files in the artifact archive
func (fc *FollowupController) Artifacts(c echo.Context) error {
	names, err := fc.svc.ListArchivedArtifacts(c.Request().Context())
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, map[string]interface{}{
		"artifacts": names,
		"count":     len(names),
	})
}

// ArtifactLink returns a time-limited download URL for an archived file
func (fc *FollowupController) ArtifactLink(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return HandleError(fc.logger, c, errors.ErrInvalidArgument("artifact name is required"))
	}

	url, err := fc.svc.ArchivedArtifactURL(c.Request().Context(), name)
	if err != nil {
		return HandleError(fc.logger, c, err)
	}

	return HandleSuccess(fc.logger, c, map[string]string{"url": url})
}

// readAttendeeCSV parses the uploaded CSV into a header list plus one
// map per data row. Short rows pad with empty strings via the header
// zip; ragged long rows are a client error.
func readAttendeeCSV(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.ErrInvalidArgument("CSV file is empty or unreadable")
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.ErrInvalidArgument("CSV row could not be parsed: " + err.Error())
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
