package dto

import (
	"time"

	"edurooms/internal/domains/incident/model"
	"edurooms/shared"
	gDto "edurooms/shared/dto"
	gModel "edurooms/shared/model"
)

type CreateIncidentRequest struct {
	RoomID      int64  `json:"room_id"        validate:"required,gt=0"`
	Description string `json:"description"    validate:"required,min=10,max=1000"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=electrical it structural cleaning other"`
}

func (c *CreateIncidentRequest) ToModel(userID int64, actor string, now time.Time) model.Incident {
	incidentType := model.TypeOther
	if c.Type != "" {
		incidentType = model.Type(c.Type)
	}

	return model.Incident{
		RoomID:      c.RoomID,
		UserID:      userID,
		Description: c.Description,
		Type:        incidentType,
		Status:      model.StatusPending,
		Metadata:    gModel.NewMetadata(now, actor),
	}
}

type UpdateIncidentStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending in_review resolved"`
}

type IncidentResponse struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"room_id"`
	RoomName    string `json:"room_name,omitempty"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *IncidentResponse) FromModel(model model.Incident) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.Description = model.Description
	r.Type = string(model.Type)
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetIncidentsResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetIncidentsResponse) FromModels(models []model.Incident, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Incidents = make([]IncidentResponse, len(models))
	for i, mod := range models {
		r.Incidents[i].FromModel(mod)
	}
}
