package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/services"
	"github.com/gspavan07/StudentCodingDashboard/internal/middleware"
)

// StudentController handles roster reads and the admin mutations.
type StudentController struct {
	studentService *services.StudentService
	importService  *services.ImportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, importService *services.ImportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
	}
}

// GetAllStudents lists every student with profile and computed figures
// @Summary List all students
// @Description Returns every student with its coding profile and computed score
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentProfileResponse} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/all [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetStudent retrieves one student by roll number
// @Summary Get student by roll number
// @Description Returns one student with its coding profile and computed score
// @Tags students
// @Produce json
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{rollNumber} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByRollNumber(ctx, ctx.Param("rollNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// GetStudentsBySection lists the students of one branch/year section
// @Summary List students by section
// @Description Returns the students matching the branch and year query parameters
// @Tags students
// @Produce json
// @Param branch query string true "Branch code"
// @Param year query string false "Year of study"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Branch missing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudentsBySection(ctx *gin.Context) {
	students, err := c.studentService.GetStudentsBySection(ctx, ctx.Query("branch"), ctx.Query("year"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// CreateStudent registers a single student
// @Summary Create a student
// @Description Registers one student without a coding profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Roll number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// UpdateStudent applies a partial update to a student
// @Summary Update a student
// @Description Updates the mutable fields of a student; absent fields stay untouched
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID").
			WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// DeleteStudent removes a student and its profile
// @Summary Delete a student
// @Description Removes the student with the given roll number together with its profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{rollNumber} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("rollNumber")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "student deleted"}))
}

// DeleteBranch removes every student of a branch
// @Summary Delete a branch roster
// @Description Removes every student in the given branch and reports how many were removed
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param branch path string true "Branch code"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteCountResponse} "Branch roster cleared"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/branch/{branch} [delete]
func (c *StudentController) DeleteBranch(ctx *gin.Context) {
	n, err := c.studentService.DeleteBranch(ctx, ctx.Param("branch"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteCountResponse{Deleted: n, Message: "branch roster cleared"}))
}

// DeleteSection removes every student of a branch/year section
// @Summary Delete a section roster
// @Description Removes every student in the given branch and year and reports how many were removed
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param branch path string true "Branch code"
// @Param year path string true "Year of study"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteCountResponse} "Section roster cleared"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/branch/{branch}/section/{year} [delete]
func (c *StudentController) DeleteSection(ctx *gin.Context) {
	n, err := c.studentService.DeleteSection(ctx, ctx.Param("branch"), ctx.Param("year"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteCountResponse{Deleted: n, Message: "section roster cleared"}))
}

// ImportStudents bulk-upserts students with their scraped metrics
// @Summary Bulk import students
// @Description Upserts a batch of students with their scraped platform metrics; malformed rows are skipped
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportRequest true "Import rows"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResponse} "Batch reconciled"
// @Failure 400 {object} dto.ErrorResponse "Empty or invalid batch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid import payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.importService.Import(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
