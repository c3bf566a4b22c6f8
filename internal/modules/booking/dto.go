package booking

type BuildDraftRequest struct {
	CourseID    string   `json:"course_id" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	CourseCount int      `json:"course_count" binding:"required,gt=0"`
	Times       []string `json:"times" binding:"required"`
}

type SlotAvailability struct {
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
}
