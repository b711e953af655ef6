package room

import "fluiddiary/internal/domain/diary"

type putInput struct {
	Code string `path:"code" minLength:"4" maxLength:"20" example:"ABCD2345" doc:"Room code"`
	Body diary.Snapshot
}

type putOutput struct {
	Body putResponse
}

type putResponse struct {
	Code   string `json:"code" example:"ABCD2345" doc:"Normalized room code"`
	Status string `json:"status" example:"Ok"`
}

type getInput struct {
	Code string `path:"code" minLength:"4" maxLength:"20" example:"ABCD2345" doc:"Room code"`
}

type getOutput struct {
	Body diary.Snapshot
}
