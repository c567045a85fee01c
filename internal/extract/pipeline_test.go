package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, cfg ValidatorConfig) *Pipeline {
	t.Helper()
	return NewPipeline(newTestValidator(t, cfg), discardLogger())
}

func TestPipelineEndToEnd(t *testing.T) {
	raw := "Here is the data: {'报销单号':'A001','日期':'2024年5月1日','报销人':'张三','部门':'财务部'," +
		"'项目':[{'名称':'打印','金额':12.5},{'名称':'交通','金额':30}],'总金额':42.5}"

	rows, err := newTestPipeline(t, ValidatorConfig{}).Process(raw)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, FlatRow{
		DocumentID:  "A001",
		Date:        "2024-05-01",
		Submitter:   "张三",
		Department:  "财务部",
		ItemName:    "打印",
		ItemAmount:  12.5,
		TotalAmount: 42.5,
	}, rows[0])
	assert.Equal(t, FlatRow{
		DocumentID:  "A001",
		Date:        "2024-05-01",
		Submitter:   "张三",
		Department:  "财务部",
		ItemName:    "交通",
		ItemAmount:  30,
		TotalAmount: 42.5,
	}, rows[1])
}

func TestPipelineUnrecognizedResponse(t *testing.T) {
	_, err := newTestPipeline(t, ValidatorConfig{}).Process("no json here at all")
	require.ErrorIs(t, err, ErrNoJSONFound)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageParse, stageErr.Stage)
}

func TestPipelineInvalidShape(t *testing.T) {
	// document id present but everything else missing
	_, err := newTestPipeline(t, ValidatorConfig{}).Process(`{"报销单号":"A001"}`)
	require.ErrorIs(t, err, ErrInvalidShape)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageValidate, stageErr.Stage)
}

func TestPipelineBadLineItem(t *testing.T) {
	raw := `{"报销单号":"A001","日期":"2024-05-01","报销人":"张三","部门":"财务部",` +
		`"项目":[{"名称":"打印","金额":"十二"}],"总金额":12.5}`

	_, err := newTestPipeline(t, ValidatorConfig{}).Process(raw)
	require.ErrorIs(t, err, ErrBadLineItem)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFlatten, stageErr.Stage)
}

func TestPipelineZeroItemsYieldsZeroRows(t *testing.T) {
	raw := `{"报销单号":"A001","日期":"2024-05-01","报销人":"张三","部门":"财务部","项目":[],"总金额":0}`

	rows, err := newTestPipeline(t, ValidatorConfig{}).Process(raw)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPipelineExtractProjectsRecord(t *testing.T) {
	raw := `{"报销单号":"A001","日期":"2024/05/01","报销人":"张三","部门":"财务部",` +
		`"项目":[{"名称":"打印","金额":12.5}],"总金额":12.5}`

	rec, err := newTestPipeline(t, ValidatorConfig{}).Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "A001", rec.DocumentID)
	// the raw date survives on the record; normalization happens at flatten
	assert.Equal(t, "2024/05/01", rec.Date)
	assert.Equal(t, "张三", rec.Submitter)
	assert.Equal(t, "财务部", rec.Department)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "打印", rec.LineItems[0].Name)
}
