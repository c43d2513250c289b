package models

// Review is shown on the mentor dashboard
type Review struct {
	StudentName string `json:"student_name"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Date        string `json:"date"`
}

// MentorReviews is the fixed review list every mentor dashboard displays.
// No review document exists yet.
var MentorReviews = []Review{
	{StudentName: "John D.", Rating: 5, Comment: "Excellent mentor!", Date: "2023-05-15"},
	{StudentName: "Sarah M.", Rating: 5, Comment: "Very helpful and knowledgeable.", Date: "2023-06-22"},
	{StudentName: "Michael R.", Rating: 4, Comment: "Good explanations and patient.", Date: "2023-07-10"},
	{StudentName: "Emily T.", Rating: 5, Comment: "Helped me understand difficult concepts.", Date: "2023-08-05"},
	{StudentName: "David L.", Rating: 3, Comment: "Decent explanations but sometimes rushed.", Date: "2023-09-18"},
}
