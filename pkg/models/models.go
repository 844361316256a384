package models

// CourseKind classifies a catalog course
type CourseKind string

const (
	KindLecture CourseKind = "Lecture"
	KindLab     CourseKind = "Lab"
	KindProject CourseKind = "Project"
	KindLibrary CourseKind = "Library"
	KindBreak   CourseKind = "Break"
)

// DayGroup names a recurrence pattern shared by slot rules
type DayGroup string

const (
	GroupMWF    DayGroup = "MWF"
	GroupTTS    DayGroup = "TTS"
	GroupCustom DayGroup = "Custom"
)

// Professor represents a teaching staff member
type Professor struct {
	Initials string `json:"initials" yaml:"initials"`
	Name     string `json:"name" yaml:"name"`
}

// Course represents a catalog entry
type Course struct {
	Code string     `json:"code" yaml:"code"`
	Name string     `json:"name" yaml:"name"`
	Kind CourseKind `json:"type" yaml:"type"`
}

// Catalog is the static reference data the compiler resolves against
type Catalog struct {
	Professors []Professor `json:"professors" yaml:"professors"`
	Courses    []Course    `json:"courses" yaml:"courses"`
}

// SlotRule is a compact recurring slot that expands into occurrences
type SlotRule struct {
	DayGroup          DayGroup `json:"day_group" yaml:"day_group"`
	Days              []string `json:"days,omitempty" yaml:"days,omitempty"` // Custom only
	Section           string   `json:"section" yaml:"section"`
	Room              string   `json:"room" yaml:"room"`
	Time              string   `json:"time" yaml:"time"`
	CourseCode        string   `json:"course" yaml:"course"`
	ProfessorInitials []string `json:"professors" yaml:"professors"`
}

// Occurrence is one concrete weekly lecture instance
type Occurrence struct {
	Day               string     `json:"day" yaml:"day"`
	Section           string     `json:"section" yaml:"section"`
	Room              string     `json:"room" yaml:"room"`
	Time              string     `json:"time" yaml:"time"`
	CourseCode        string     `json:"course" yaml:"course"`
	Kind              CourseKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title             string     `json:"title" yaml:"title"`
	Professor         string     `json:"professor" yaml:"professor"`
	ProfessorInitials []string   `json:"professor_initials,omitempty" yaml:"professor_initials,omitempty"`
}

// NowContext is the caller's current weekday and time of day
type NowContext struct {
	Weekday string `json:"weekday"`
	Minutes int    `json:"minutes"`
}

// QueryCriteria is a partial filter extracted from a user turn
type QueryCriteria struct {
	CourseCode string `json:"course_code,omitempty" yaml:"course_code,omitempty"`
	Professor  string `json:"professor,omitempty" yaml:"professor,omitempty"`
	Section    string `json:"section,omitempty" yaml:"section,omitempty"`
	Day        string `json:"day,omitempty" yaml:"day,omitempty"`
}

// IsEmpty reports whether no field is set
func (q QueryCriteria) IsEmpty() bool {
	return q == QueryCriteria{}
}

// SectionOnly reports whether the criteria carry a section and nothing else
func (q QueryCriteria) SectionOnly() bool {
	return q.Section != "" && q.CourseCode == "" && q.Professor == "" && q.Day == ""
}

// Resolution is the outcome of applying criteria to the schedule
type Resolution struct {
	Matches            []Occurrence `json:"matches" yaml:"matches"`
	NeedsClarification bool         `json:"needs_clarification" yaml:"needs_clarification"`
	ClarifyOn          string       `json:"clarify_on,omitempty" yaml:"clarify_on,omitempty"`
}

// NextLecture is the banner payload for the upcoming occurrence
type NextLecture struct {
	Occurrence   Occurrence `json:"occurrence" yaml:"occurrence"`
	Start        string     `json:"start" yaml:"start"`
	StartMinutes int        `json:"start_minutes" yaml:"start_minutes"`
	TimeLeft     string     `json:"time_left" yaml:"time_left"`
}

// CountdownStatus is what the live indicator renders on each tick
type CountdownStatus struct {
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Now     int    `json:"now"`
}

// ResolveRequest is the data structure for the resolve endpoint
type ResolveRequest struct {
	Criteria QueryCriteria `json:"criteria"`
	Previous QueryCriteria `json:"previous"`
}

// ResolveResponse is the data structure for the resolve result
type ResolveResponse struct {
	Criteria   QueryCriteria `json:"criteria" yaml:"criteria"`
	Resolution `yaml:",inline"`
}

// TimetableDocument is a full timetable source: catalog plus slot rules
type TimetableDocument struct {
	Catalog `yaml:",inline"`
	Rules   []SlotRule `json:"rules" yaml:"rules"`
}

// ConversationContext is the payload handed to the conversational layer
type ConversationContext struct {
	Language   string       `json:"language"`
	CurrentDay string       `json:"current_day"`
	Professors []Professor  `json:"professors"`
	Courses    []Course     `json:"courses"`
	Schedule   []Occurrence `json:"schedule"`
}
