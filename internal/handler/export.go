package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportTweetsXLSX 导出本人推文为 XLSX（含回复数 / 按赞数）
func (h *ContentHandler) ExportTweetsXLSX(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	tweets, err := h.Content.UserTweets(c.Request.Context(), id, viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "推文"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "建立工作表失敗")
		return
	}

	// 设置表头
	headers := []string{"ID", "內容", "回覆數", "按讚數", "建立時間"}
	for i, title := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, title)
	}

	// 写入数据
	for idx, t := range tweets {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.RepliedCount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.LikedCount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 60)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"tweets_%s_%s.xlsx\"",
		viewer.Account, time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "匯出失敗")
	}
}
