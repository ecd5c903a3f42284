package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mtihani/portal/core"
	"github.com/mtihani/portal/core/exam"
)

type examApi struct {
	svc *exam.Service
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *exam.Service) {
	api := examApi{svc: svc}

	eg := g.Group("/exams", jwt)

	// timetable: readable by any signed-in user, managed by admin
	eg.GET("/timetable", api.queryTimetable)
	eg.POST("/timetable", api.createTimetableEntry, adminMiddleware())
	eg.DELETE("/timetable", api.destroyTimetableEntries, adminMiddleware())

	// marks: entered and submitted by faculty, published by admin
	eg.GET("/marks", api.queryFacultyMarks, facultyMiddleware())
	eg.POST("/marks", api.createMarksEntry, facultyMiddleware())
	eg.PUT("/marks/:id/submit", api.submitMarksEntry, facultyMiddleware())
	eg.POST("/publish", api.publishResults, adminMiddleware())

	// published results of the signed-in student
	eg.GET("/results", api.queryStudentResults, studentMiddleware())

	// hall tickets: issued by admin, read by the signed-in student
	eg.POST("/hall-tickets", api.issueHallTicket, adminMiddleware())
	eg.GET("/hall-ticket", api.studentHallTicket, studentMiddleware())
}

// Handlers

func (api *examApi) queryTimetable(ctx echo.Context) error {
	filter := new(exam.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []exam.TimetableEntry{})
	}
	filter.Clean()

	entries, err := api.svc.Timetable(*filter)
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	if entries == nil {
		entries = []exam.TimetableEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *examApi) createTimetableEntry(ctx echo.Context) error {
	var data exam.NewTimetableEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTimetableEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	entry, err := api.svc.AddTimetableEntry(data)
	if err != nil {
		return errors.Wrap(err, "adding timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *examApi) destroyTimetableEntries(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.DeleteTimetableEntries(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting timetable entries")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) createMarksEntry(ctx echo.Context) error {
	var data exam.NewMarksEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMarksEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entry, err := api.svc.EnterMarks(data, claims.UserID())
	if err != nil {
		return errors.Wrap(err, "entering marks")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *examApi) submitMarksEntry(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	// faculty can only submit their own draft entries
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	entry, err := api.svc.GetMarksEntry(id)
	if err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding marks entry")
	}
	if !claims.IsAdmin && entry.EnteredBy != claims.UserID() {
		return errHttpForbidden
	}

	entry, err = api.svc.SubmitMarks(id)
	if err != nil {
		switch errors.Cause(err) {
		case exam.ErrNotFound:
			return errHttpNotFound
		case exam.ErrAlreadyPublished:
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "submitting marks")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *examApi) publishResults(ctx echo.Context) error {
	var data PublishRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PublishRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	count, err := api.svc.PublishResults(data.Code)
	if err != nil {
		if errors.Cause(err) == exam.ErrNothingToPublish {
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "publishing results")
	}
	return ctx.JSON(http.StatusOK, PublishResponse{Code: data.Code, Published: count})
}

func (api *examApi) queryStudentResults(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	results, err := api.svc.StudentResults(claims.UserID())
	if err != nil {
		return errors.Wrap(err, "querying student results")
	}
	if results == nil {
		results = []exam.MarksEntry{}
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *examApi) queryFacultyMarks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entries, err := api.svc.FacultyMarks(claims.UserID())
	if err != nil {
		return errors.Wrap(err, "querying faculty marks")
	}
	if entries == nil {
		entries = []exam.MarksEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *examApi) issueHallTicket(ctx echo.Context) error {
	var data exam.NewHallTicket
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHallTicket")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ticket, err := api.svc.IssueHallTicket(data)
	if err != nil {
		return errors.Wrap(err, "issuing hall ticket")
	}
	return ctx.JSON(http.StatusCreated, ticket)
}

func (api *examApi) studentHallTicket(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	semester, _ := strconv.Atoi(ctx.QueryParam("semester"))
	ticket, err := api.svc.StudentHallTicket(claims.UserID(), semester)
	if err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding hall ticket")
	}
	return ctx.JSON(http.StatusOK, ticket)
}

type (
	PublishRequest struct {
		Code string `json:"code" validate:"required"`
	}

	PublishResponse struct {
		Code      string `json:"code"`
		Published int    `json:"published"`
	}
)

func (pr *PublishRequest) Validate() error {
	pr.Code = core.CleanString(pr.Code)
	return core.Validate.Struct(pr)
}
