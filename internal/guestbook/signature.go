// Package guestbook stores the signatures visitors draw on the site.
package guestbook

// Point is a position on the signature canvas.
type Point struct {
	X float64 `json:"x" dynamodbav:"x"`
	Y float64 `json:"y" dynamodbav:"y"`
}

// Line is one brush stroke.
type Line struct {
	Points      []Point `json:"points" dynamodbav:"points" validate:"required,min=1,max=2000"`
	BrushColor  string  `json:"brushColor" dynamodbav:"brushColor" validate:"required,max=32"`
	BrushRadius float64 `json:"brushRadius" dynamodbav:"brushRadius" validate:"gt=0,lte=100"`
}

// Image is a drawing of Width x Height canvas units.
type Image struct {
	Width  int    `json:"width" dynamodbav:"width" validate:"gt=0,lte=4096"`
	Height int    `json:"height" dynamodbav:"height" validate:"gt=0,lte=4096"`
	Lines  []Line `json:"lines" dynamodbav:"lines" validate:"required,min=1,max=500,dive"`
}

// Signature is an Image left on the guest book of Subject.
type Signature struct {
	ID      string `json:"id" dynamodbav:"id"`
	Subject string `json:"subject" dynamodbav:"subject"`
	// Date is an AWSDateTime, e.g. 2024-03-01T12:00:00.000Z.
	Date  string `json:"date" dynamodbav:"date"`
	Image Image  `json:"image" dynamodbav:"image"`
}
