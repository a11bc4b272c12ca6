package main

import (
	"agrilink/models"
)

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
}

type createReportReq struct {
	Farm            string             `json:"farm"`
	Photo           models.Photo       `json:"photo"`
	WeatherType     models.WeatherType `json:"weatherType"`
	SoilType        models.SoilType    `json:"soilType"`
	PlantStatus     models.PlantStatus `json:"plantStatus"`
	AdditionalNotes string             `json:"additionalNotes,omitempty"`
}

type updateStatusReq struct {
	Status models.ReportStatus `json:"status"`
}

type askQuestionReq struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type answerQuestionReq struct {
	Answer string `json:"answer"`
}
