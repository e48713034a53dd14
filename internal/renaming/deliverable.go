package renaming

import (
	"fmt"
	"path/filepath"

	"sundry/internal/textutil"
)

// DocTypes is the fixed set of student deliverable document types, in
// submission order. The "skip" slot lets a run pass over a step.
var DocTypes = []string{
	"任务书",
	"文献综述",
	"外文翻译",
	"开题报告",
	"skip",
	"教师中期检查表",
	"毕业设计过程稿",
	"毕业设计过程稿图纸",
	"毕业设计定稿",
	"毕业设计定稿图纸",
	"指导记录表",
	"指导教师评阅",
	"评阅教师评阅",
}

// DeliverableName builds "{index}-{id}{name}[{docType}]" plus the source
// file's extension. The id and name come from interactive prompts, so both
// are sanitized for filesystem use.
func DeliverableName(index int, studentID, studentName, docType, sourcePath string) string {
	studentID = textutil.SanitizeFileName(studentID)
	studentName = textutil.SanitizeFileName(studentName)
	base := fmt.Sprintf("%d-%s%s[%s]", index, studentID, studentName, docType)
	if ext := filepath.Ext(sourcePath); ext != "" {
		return base + ext
	}
	return base
}
