package models

// VoteLike is the only vote type the API accepts; sending it again for the
// same visitor removes the like.
const VoteLike = 1

// VoteRequest toggles the like of UserID on a rating comment.
type VoteRequest struct {
	Type   int    `json:"type"`
	UserID string `json:"userId"`
}

// RatingForm is the rating form posted by the browser.
type RatingForm struct {
	General       int    `json:"general" binding:"required,min=1,max=5"`
	Explanation   int    `json:"explanation" binding:"required,min=1,max=5"`
	Accessibility int    `json:"accessibility" binding:"required,min=1,max=5"`
	Difficulty    int    `json:"difficulty" binding:"required,min=1,max=5"`
	Attendance    int    `json:"attendance" binding:"required,min=1,max=5"`
	WouldRetake   *bool  `json:"wouldRetake"`
	Comment       string `json:"comment" binding:"max=2000"`
	Subject       string `json:"subject" binding:"required"`
	Captcha       string `json:"captcha" binding:"required"`
	// FingerprintRequestID is produced by the fingerprint agent in the
	// browser. Required only when fingerprinting is enabled.
	FingerprintRequestID string `json:"fingerprintRequestId"`
}

// RatingSubmission is the payload sent to the API.
type RatingSubmission struct {
	General       int    `json:"general"`
	Explanation   int    `json:"explanation"`
	Accessibility int    `json:"accessibility"`
	Difficulty    int    `json:"difficulty"`
	Attendance    int    `json:"attendance"`
	WouldRetake   bool   `json:"wouldRetake"`
	Comment       string `json:"comment"`
	Subject       string `json:"subject"`
	Professor     string `json:"professor"`
	Captcha       string `json:"captcha"`
	UserID        string `json:"userId"`
	Fingerprint   string `json:"fingerprint,omitempty"`
}

// NewRatingSubmission builds the API payload from the form. wouldRetake
// defaults to true like the form's initial state.
func NewRatingSubmission(form RatingForm, professorID, visitorID, fingerprint string) RatingSubmission {
	retake := true
	if form.WouldRetake != nil {
		retake = *form.WouldRetake
	}
	return RatingSubmission{
		General:       form.General,
		Explanation:   form.Explanation,
		Accessibility: form.Accessibility,
		Difficulty:    form.Difficulty,
		Attendance:    form.Attendance,
		WouldRetake:   retake,
		Comment:       form.Comment,
		Subject:       form.Subject,
		Professor:     professorID,
		Captcha:       form.Captcha,
		UserID:        visitorID,
		Fingerprint:   fingerprint,
	}
}
