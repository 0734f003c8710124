package lexicon

import "regexp"

// SimplifiedChinese exercises the multilingual path end to end: a CJK
// lexicon with full-width-to-half-width canonicalization and its own
// whitespace mode, mapping the same semantic Kind set onto Chinese
// phrases so the keyword translator can rewrite it into EnglishUS.
var SimplifiedChinese = buildSimplifiedChinese()

func buildSimplifiedChinese() *Lexicon {
	b := NewBuilder("zh-Hans", "简体中文", LTR).
		Keyword(KindModuleDecl, "模块").
		Keyword(KindImport, "导入").
		Keyword(KindIf, "如果").
		Keyword(KindOtherwise, "否则").
		Keyword(KindMatch, "匹配").
		Keyword(KindWhen, "当").
		Keyword(KindReturn, "返回").
		Keyword(KindLet, "令").
		Keyword(KindBe, "为").
		Keyword(KindSet, "设置").
		Keyword(KindTo, "为").
		Keyword(KindAnd, "且").
		Keyword(KindOr, "或").
		Keyword(KindNot, "非").
		Keyword(KindIO, "输入输出").
		Keyword(KindCPU, "计算").
		Keyword(KindWorkflow, "工作流").
		Keyword(KindStep, "步骤").
		Keyword(KindDepends, "依赖").
		Keyword(KindOn, "于").
		Keyword(KindCompensate, "补偿").
		Keyword(KindRetry, "重试").
		Keyword(KindTimeout, "超时").
		Keyword(KindMaxAttempts, "最大次数").
		Keyword(KindBackoff, "退避").
		Keyword(KindWithin, "在内").
		Keyword(KindScope, "作用域").
		Keyword(KindStart, "启动").
		Keyword(KindAsync, "异步").
		Keyword(KindAwait, "等待").
		Keyword(KindWaitFor, "等待完成").
		Keyword(KindRequired, "必填").
		Keyword(KindBetween, "介于").
		Keyword(KindAtLeast, "至少").
		Keyword(KindAtMost, "至多").
		Keyword(KindMatching, "匹配模式").
		Keyword(KindPattern, "模式").
		Keyword(KindMaybe, "可能").
		Keyword(KindOptionOf, "选项类型").
		Keyword(KindResultOf, "结果类型").
		Keyword(KindOkOf, "成功值").
		Keyword(KindErrOf, "错误值").
		Keyword(KindSomeOf, "存在值").
		Keyword(KindNone, "空值").
		Keyword(KindTrue, "真").
		Keyword(KindFalse, "假").
		Keyword(KindNull, "空").
		Keyword(KindText, "文本").
		Keyword(KindInt, "整数").
		Keyword(KindFloat, "浮点数").
		Keyword(KindBool, "布尔").
		Keyword(KindForEach, "遍历").
		Keyword(KindIn, "在").
		Keyword(KindPlus, "加").
		Keyword(KindMinus, "减").
		Keyword(KindTimes, "乘").
		Keyword(KindDividedBy, "除以").
		Keyword(KindLessThan, "小于").
		Keyword(KindGreaterThan, "大于").
		Keyword(KindEqualsTo, "等于").
		Keyword(KindIs, "是").
		Keyword(KindUnder, "小于等于").
		Keyword(KindOver, "超过").
		Keyword(KindMoreThan, "多于").
		Keyword(KindTypeDef, "定义").
		Keyword(KindTypeWith, "包含").
		Keyword(KindTypeHas, "拥有").
		Keyword(KindTypeOneOf, "为以下之一").
		Keyword(KindFuncTo, "函数").
		Keyword(KindFuncGiven, "给定").
		Keyword(KindFuncProduce, "产生").
		Keyword(KindFuncPerforms, "执行").
		Punctuation(Punctuation{
			StatementEnd:    "。",
			ListSeparator:   "，",
			EnumSeparator:   "、",
			BlockStart:      "：",
			QuoteOpen:       "“",
			QuoteClose:      "”",
			OptionMarkOpen:  "【",
			OptionMarkClose: "】",
		}).
		Canonicalization(Canonicalization{
			FullWidthToHalf:   true,
			WhitespaceMode:    WhitespaceChinese,
			RemoveArticles:    false,
			AllowedDuplicates: [][]Kind{{KindTo, KindBe}},
		}).
		Message("L001", "无法识别的字符 %q").
		Message("L002", "字符串未闭合").
		Message("P006", "期望出现 %q").
		Message("S003", "模块 %q 中存在重复的导出名称 %q")

	b.TypeRule(regexp.MustCompile(`(邮箱|邮件)$`), "text", 100)
	b.TypeRule(regexp.MustCompile(`(时间|日期)$`), "timestamp", 100)
	b.TypeRule(regexp.MustCompile(`^是否|(标志|启用)$`), "bool", 90)
	b.TypeRule(regexp.MustCompile(`(数量|总数|年龄)$`), "int", 80)
	b.TypeRule(regexp.MustCompile(`(价格|金额|比率|评分)$`), "float", 80)

	return b.Build()
}
