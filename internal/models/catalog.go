package models

type Faculty struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
}

type Department struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Subject struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Semester int    `json:"semester,omitempty"`
}

type RatingStats struct {
	TotalRatings         int     `json:"totalRatings"`
	AverageGeneral       float64 `json:"averageGeneral"`
	AverageExplanation   float64 `json:"averageExplanation"`
	AverageAccessibility float64 `json:"averageAccessibility"`
	AverageDifficulty    float64 `json:"averageDifficulty"`
	AverageAttendance    float64 `json:"averageAttendance"`
}

// FacultyOverview is the landing page payload of GET /faculties.
type FacultyOverview struct {
	Faculties     []Faculty      `json:"faculties"`
	TopProfessors []TopProfessor `json:"topProfessors"`
}

type FacultyRef struct {
	ID           string `json:"_id"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

type TopProfessor struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Faculty     FacultyRef  `json:"faculty"`
	Subjects    []Subject   `json:"subjects"`
	RatingStats RatingStats `json:"ratingStats"`
}

type Professor struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Department  *Department `json:"department,omitempty"`
	Biography   string      `json:"biography"`
	Subjects    []Subject   `json:"subjects"`
	RatingStats RatingStats `json:"ratingStats"`
}

// AdminSubject is a row of the admin subject list.
type AdminSubject struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Code     string     `json:"code,omitempty"`
	Semester int        `json:"semester,omitempty"`
	Faculty  FacultyRef `json:"faculty"`
}

// AdminProfessor is a row of the admin professor list. Faculty and
// subjects come as names.
type AdminProfessor struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Faculty     string      `json:"faculty"`
	Subjects    []string    `json:"subjects"`
	RatingStats RatingStats `json:"ratingStats"`
}

// FacultyInput is the admin form for creating or editing a faculty.
type FacultyInput struct {
	Name         string `json:"name" binding:"required"`
	Abbreviation string `json:"abbreviation"`
	Description  string `json:"description"`
	Image        string `json:"image"`
}

type SubjectInput struct {
	Name       string   `json:"name" binding:"required"`
	Code       string   `json:"code"`
	Semester   int      `json:"semester" binding:"omitempty,min=1,max=12"`
	Professors []string `json:"professors"`
}

type ProfessorInput struct {
	Name       string   `json:"name" binding:"required"`
	Department string   `json:"department"`
	Biography  string   `json:"biography" binding:"required"`
	Subjects   []string `json:"subjects" binding:"required,min=1"`
}

// DeleteConfirmation guards destructive admin actions: the admin must type
// the resource name.
type DeleteConfirmation struct {
	ConfirmName string `json:"confirmName" binding:"required"`
}
