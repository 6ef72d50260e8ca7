package entity

import (
	"strings"
	"time"
)

// 上传媒体对象键前缀
const (
	IconUploadPrefix  = "app_icons/"
	GuideUploadPrefix = "guides/"
)

// ZohoApp 内部工具目录条目
type ZohoApp struct {
	ID              string     `json:"id" gorm:"primaryKey;size:32"`
	Slug            string     `json:"slug" gorm:"size:200;not null;uniqueIndex"`
	Name            string     `json:"name" gorm:"size:200;not null"`
	Tagline         string     `json:"tagline" gorm:"size:300"`
	Description     string     `json:"description" gorm:"type:text"`
	UseCases        StringList `json:"use_cases" gorm:"type:jsonb"`
	Who             string     `json:"who" gorm:"size:200"`
	Doc             string     `json:"doc" gorm:"size:512"`
	InternalRunbook string     `json:"internal_runbook" gorm:"size:512"`
	CliqChannel     string     `json:"cliq_channel" gorm:"size:512"`
	Access          string     `json:"access" gorm:"size:200"`
	Icon            string     `json:"icon" gorm:"size:512"`
	Tags            string     `json:"tags" gorm:"size:200"`
	HelpContact     JSONB      `json:"help_contact" gorm:"type:jsonb"`
	Popularity      int        `json:"popularity" gorm:"not null;default:0"`
	Rating          float64    `json:"rating" gorm:"not null;default:0"`
	LastUpdated     time.Time  `json:"last_updated" gorm:"autoUpdateTime"`
	GuideURL        string     `json:"guide_url" gorm:"size:512"`
	GuideFile       string     `json:"guide_file" gorm:"size:512"`
}

func (ZohoApp) TableName() string {
	return "zoho_apps"
}

// GuideSource 前端使用的指南地址:优先已上传文件,否则外部链接
func (a *ZohoApp) GuideSource(mediaBase string) string {
	if a.GuideFile != "" {
		return joinBase(mediaBase, a.GuideFile)
	}
	return a.GuideURL
}

// HasUploadedIcon 图标是否为已上传媒体对象
func (a *ZohoApp) HasUploadedIcon() bool {
	return strings.HasPrefix(a.Icon, IconUploadPrefix)
}

func joinBase(base, path string) string {
	if base == "" {
		return "/" + strings.TrimPrefix(path, "/")
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
