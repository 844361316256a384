package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/lecturebot-api-go/pkg/catalog"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

// maxDocumentSize caps an uploaded timetable document
const maxDocumentSize = 1 << 20

// ValidateTimetable compiles a candidate timetable document (YAML or JSON)
// without installing it and reports the first configuration defect.
func (h *Handler) ValidateTimetable(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	doc, err := catalog.Parse(body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Check for duplicate catalog keys
	initials := make(map[string]bool)
	for _, p := range doc.Professors {
		if initials[p.Initials] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate professor initials: " + p.Initials})
			return
		}
		initials[p.Initials] = true
	}
	codes := make(map[string]bool)
	for _, co := range doc.Courses {
		if codes[co.Code] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate course code: " + co.Code})
			return
		}
		codes[co.Code] = true
	}

	s, err := scheduler.NewScheduler(doc)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Unresolved references are not fatal, but worth reporting
	var unknownCourses, unknownProfessors []string
	for _, r := range doc.Rules {
		if !codes[r.CourseCode] {
			unknownCourses = append(unknownCourses, r.CourseCode)
		}
		for _, in := range r.ProfessorInitials {
			if !initials[in] {
				unknownProfessors = append(unknownProfessors, in)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"professor_count":  len(doc.Professors),
			"course_count":     len(doc.Courses),
			"rule_count":       len(doc.Rules),
			"occurrence_count": len(s.Occurrences),
		},
		"warnings": gin.H{
			"unknown_courses":    unknownCourses,
			"unknown_professors": unknownProfessors,
		},
	})
}
