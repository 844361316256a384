// Package catalog holds the MCA term timetable and loads replacements from YAML.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

// Professors teaching this term
var Professors = []models.Professor{
	{Initials: "MMP", Name: "Mrs. Mamata M. Panda"},
	{Initials: "PS", Name: "Mr. Prashant Srivastava"},
	{Initials: "AS", Name: "Mr. Akhilesh Singh"},
	{Initials: "RP", Name: "Prof. Rabins Porwal"},
	{Initials: "MT", Name: "Dr. Mamta Tiwari"},
	{Initials: "MR", Name: "Dr. Mayur Rahul"},
	{Initials: "ArS", Name: "Dr. Arpita Singh"},
}

// Courses offered this term, including the non-teaching slots
var Courses = []models.Course{
	{Code: "MCA-3001", Name: "Computer Networks", Kind: models.KindLecture},
	{Code: "MCA-3002", Name: "Artificial Intelligence", Kind: models.KindLecture},
	{Code: "MCA-3003", Name: "Software Engineering", Kind: models.KindLecture},
	{Code: "MCA-3005", Name: "Elective-I (Data Warehousing & Data Mining)", Kind: models.KindLecture},
	{Code: "MCA-3011", Name: "Elective-II (Digital Image Processing)", Kind: models.KindLecture},
	{Code: "MCA-3051", Name: "Software Engineering Lab", Kind: models.KindLab},
	{Code: "MCA-3052", Name: "Mini Project (AI / ISCL)", Kind: models.KindProject},
	{Code: "Lib", Name: "Library", Kind: models.KindLibrary},
	{Code: "Lunch", Name: "Lunch Break", Kind: models.KindBreak},
}

func slot(group models.DayGroup, section, room, time, course string, profs ...string) models.SlotRule {
	return models.SlotRule{
		DayGroup:          group,
		Section:           section,
		Room:              room,
		Time:              time,
		CourseCode:        course,
		ProfessorInitials: profs,
	}
}

func custom(days []string, section, room, time, course string, profs ...string) models.SlotRule {
	r := slot(models.GroupCustom, section, room, time, course, profs...)
	r.Days = days
	return r
}

// Rules is the term's weekly timetable in compact form.
// Times without AM/PM from 01:00 to 05:00 are afternoon slots.
var Rules = []models.SlotRule{
	slot(models.GroupMWF, "A", "CA-213", "10:00 - 11:00", "MCA-3003", "AS"),
	slot(models.GroupMWF, "A", "CA-213", "11:00 - 12:00", "MCA-3011", "MR"),
	slot(models.GroupMWF, "A", "CA-213", "12:00 - 01:00", "Lib"),
	slot(models.GroupMWF, "A", "CA-213", "01:00 - 02:00", "Lunch"),
	slot(models.GroupMWF, "A", "CA-213", "02:00 - 03:00", "MCA-3002", "PS"),

	slot(models.GroupMWF, "B", "CA-303", "10:00 - 11:00", "MCA-3003", "RP"),
	slot(models.GroupMWF, "B", "CA-303", "11:00 - 12:00", "MCA-3001", "MMP"),
	slot(models.GroupMWF, "B", "CA-102", "12:00 - 01:00", "MCA-3002", "PS"),
	slot(models.GroupMWF, "B", "CA-303", "01:00 - 02:00", "Lunch"),

	slot(models.GroupTTS, "A", "CA-213", "10:00 - 11:00", "MCA-3001", "MMP"),
	slot(models.GroupTTS, "A", "CA-213", "11:00 - 12:00", "MCA-3005", "MT"),
	slot(models.GroupTTS, "A", "CA-213", "12:00 - 01:00", "Lib"),
	slot(models.GroupTTS, "A", "CA-213", "01:00 - 02:00", "Lunch"),

	slot(models.GroupTTS, "B", "CA-303", "10:00 - 11:00", "MCA-3011", "MR"),
	slot(models.GroupTTS, "B", "CA-303", "11:00 - 12:00", "Lib"),
	slot(models.GroupTTS, "B", "CA-303", "12:00 - 01:00", "Lunch"),
	slot(models.GroupTTS, "B", "CA-303", "01:00 - 02:00", "MCA-3005", "MT"),

	custom([]string{"Tuesday", "Saturday"}, "A", "CA-303", "03:00 - 05:00", "MCA-3051", "PS", "AS", "RP"),
	custom([]string{"Thursday"}, "A", "CA-303", "03:00 - 05:00", "MCA-3052", "PS", "AS", "RP"),
}

// Default returns the built-in term timetable
func Default() models.TimetableDocument {
	return models.TimetableDocument{
		Catalog: models.Catalog{Professors: Professors, Courses: Courses},
		Rules:   Rules,
	}
}

// Parse decodes a YAML (or JSON) timetable document
func Parse(data []byte) (models.TimetableDocument, error) {
	var doc models.TimetableDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse timetable: %w", err)
	}
	if len(doc.Rules) == 0 {
		return doc, fmt.Errorf("timetable has no rules")
	}
	return doc, nil
}

// LoadFile reads a timetable document from path
func LoadFile(path string) (models.TimetableDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.TimetableDocument{}, fmt.Errorf("failed to read timetable %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the timetable at path, or the built-in one when path is empty
func Load(path string) (models.TimetableDocument, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
