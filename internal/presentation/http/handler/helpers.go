package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

func getUUID(c *gin.Context, key string) uuid.UUID {
	val, exists := c.Get(key)
	if !exists {
		return uuid.Nil
	}
	id, _ := val.(uuid.UUID)
	return id
}

// GetRequestContext builds the caller identity from the authenticated claims
func GetRequestContext(c *gin.Context) (entity.RequestContext, bool) {
	rc := entity.RequestContext{
		UserID:    getUUID(c, "user_id"),
		CompanyID: getUUID(c, "company_id"),
		OutletID:  getUUID(c, "outlet_id"),
	}
	if rc.UserID == uuid.Nil {
		return rc, false
	}
	return rc, true
}

// requestContext writes a 401 and reports false when the caller is unknown
func requestContext(c *gin.Context) (entity.RequestContext, bool) {
	rc, ok := GetRequestContext(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
	}
	return rc, ok
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// pathID parses the :id path parameter, answering 400 when malformed
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// parseDate accepts either a calendar day or an RFC3339 timestamp. An end
// date given as a day covers the whole day.
func parseDate(field, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperror.Invalid(field, "must be YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// windowQuery filters column to the start_date..end_date window, both inclusive
func windowQuery(column, start, end string) (repository.QuerySpec, error) {
	spec := repository.QuerySpec{DateColumn: column}
	var err error
	if spec.DateFrom, err = parseDate("start_date", start, false); err != nil {
		return spec, err
	}
	if spec.DateTo, err = parseDate("end_date", end, true); err != nil {
		return spec, err
	}
	return spec, nil
}

// mergeQuery combines list filters. Contradictory filters are a validation error.
func mergeQuery(specs ...repository.QuerySpec) (repository.QuerySpec, error) {
	spec, err := repository.MergeQuerySpecs(specs...)
	if err != nil {
		return spec, apperror.Invalid("filter", err.Error())
	}
	return spec, nil
}

// bindError reports a request binding failure, itemizing validator errors
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, "Invalid request body")
		return
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fieldName(fe),
			Message: "failed on " + fe.Tag(),
		})
	}
	response.ValidationError(c, fields)
}

// UseJSONFieldNames makes binding errors name fields by their json (or form) tag.
// It must run before the first request is validated.
func UseJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return ""
		})
	})
}

var registerFieldNames sync.Once

// fieldName turns Namespace "CommitInvoiceRequest.PreviewInvoiceRequest.items[0].item_id" into "items[0].item_id"
func fieldName(fe validator.FieldError) string {
	var out []string
	for _, p := range strings.Split(fe.Namespace(), ".") {
		// request struct names, including embedded ones
		if strings.HasSuffix(p, "Request") {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}
