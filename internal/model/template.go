package model

import "time"

// DescriptionTemplate 描述模板
// content 内可包含 {{title}} {{filename}} {{preset_name}} {{date}} {{price}} 占位符，
// 未识别的占位符渲染时原样保留
type DescriptionTemplate struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Content string `gorm:"type:text" json:"content"`
}

func (*DescriptionTemplate) TableName() string {
	return "description_templates"
}
