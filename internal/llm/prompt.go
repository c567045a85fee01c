package llm

// ExtractionPrompt asks the model for the expense-form fields as one JSON
// object. The field names are the Chinese labels printed on the forms. The
// example shape uses single quotes on purpose: models imitate it, and the
// parser's repair pass handles the quoting.
const ExtractionPrompt = "这是一张报销单，请帮我提取以下信息：报销单号、日期、报销人、部门、费用明细（包含项目名称和金额）。" +
	"请以JSON格式返回，格式为：{'报销单号':'xxx', '日期':'xxx', '报销人':'xxx', '部门':'xxx', " +
	"'项目':[{'名称':'xxx', '金额':xxx}], '总金额':xxx}"
