package models

// Business labels used as placeholder keys.
const (
	KeyReportNumber       = "报告编号"
	KeyLegacyReportNumber = "审计报告编号"
	KeyPeriodEnd          = "报表截止日"
	KeyReportYear         = "报告年度"
	KeyAuditReportDate    = "审计报告日"
	KeyReportDate         = "报告日期"
	KeyCompanyInfo        = "企业信息"
)

// CompanyInfoFields lists the sub-fields composed into KeyCompanyInfo, in order.
var CompanyInfoFields = []string{"企业名称", "注册地址", "法定代表人", "注册资本", "经营范围"}

// LegacyKeys maps legacy basic-info labels to their canonical form.
var LegacyKeys = map[string]string{
	KeyLegacyReportNumber: KeyReportNumber,
}
