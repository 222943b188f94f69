package handlers

import (
	"net/http"
	"time"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type StudentHandler struct {
	studentService *services.StudentService
	validator      *validator.Validate
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		validator:      validator.New(),
	}
}

// GetStudents retrieves enrolled students, paginated and optionally
// filtered by route.
func (h *StudentHandler) GetStudents(c *gin.Context) {
	var (
		students interface{}
		err      error
	)

	if route := c.Query("route"); route != "" {
		students, err = h.studentService.ListStudentsByRoute(route)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve students", err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Students retrieved successfully", students)
		return
	}

	all, err := h.studentService.ListStudents()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve students", err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	totalPages := (len(all) + limit - 1) / limit
	utils.PaginatedResponse(c, http.StatusOK, "Students retrieved successfully", all[start:end], utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int64(len(all)),
		TotalPages: totalPages,
	})
}

// GetStudent retrieves a specific student by ID.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	student, err := h.studentService.GetStudent(studentID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Student not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Student retrieved successfully", student)
}

// CreateStudent enrolls a new student.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	student, err := h.studentService.CreateStudent(&req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create student", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Student created successfully", student)
}

// UpdateStudent updates a student's enrollment fields.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	student, err := h.studentService.UpdateStudent(studentID, &req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update student", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Student updated successfully", student)
}

// DeleteStudent removes a student's enrollment.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	if err := h.studentService.DeleteStudent(studentID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete student", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Student deleted successfully", nil)
}
