// internals/features/tasks/dto/task_dto.go
package dto

import (
	attDTO "qrstudio_backend/internals/features/attendance/dto"
	taskModel "qrstudio_backend/internals/features/tasks/model"
)

type TaskListRequest struct {
	UserID attDTO.FlexibleID `json:"userId"`
	Limit  int               `json:"limit" validate:"omitempty,min=1,max=500"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date,omitempty"`
	ProjectID   int64   `json:"project_id,omitempty"`
	ProjectName string  `json:"project_name,omitempty"`
	TaskID      int64   `json:"task_id,omitempty"`
	TaskName    string  `json:"task_name,omitempty"`
	Description string  `json:"name"`
	Hours       float64 `json:"unit_amount"`
	SOLineID    int64   `json:"so_line,omitempty"`
}

func NewTaskResponse(l taskModel.AnalyticLine) TaskResponse {
	return TaskResponse{
		ID:          l.ID,
		Date:        l.Date.Value,
		ProjectID:   l.ProjectID.ID,
		ProjectName: l.ProjectID.Name,
		TaskID:      l.TaskID.ID,
		TaskName:    l.TaskID.Name,
		Description: l.Name.Value,
		Hours:       l.UnitAmount.Value,
		SOLineID:    l.SOLine.ID,
	}
}

type TaskListResponse struct {
	Result []TaskResponse `json:"result"`
	Count  int            `json:"count"`
}

func NewTaskListResponse(lines []taskModel.AnalyticLine) TaskListResponse {
	out := make([]TaskResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, NewTaskResponse(l))
	}
	return TaskListResponse{Result: out, Count: len(out)}
}
