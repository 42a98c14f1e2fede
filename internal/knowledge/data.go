package knowledge

// 以下为内置种子数据，可通过 YAML 扩展文件追加，无需改动代码

var seedSkills = []string{
	// 编程语言
	"python", "java", "c++", "c#", "javascript", "typescript", "php", "ruby", "go", "rust", "swift", "kotlin", "r",
	// 前端技术
	"html", "css", "react", "vue", "angular", "jquery", "bootstrap", "webpack", "sass", "less",
	// 后端技术
	"node.js", "django", "flask", "spring", "express", "laravel", "asp.net", "ruby on rails",
	// 数据库
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "sqlite", "oracle", "sql server",
	// 大数据
	"hadoop", "spark", "hive", "flink", "kafka", "storm",
	// 云计算
	"aws", "azure", "gcp", "docker", "kubernetes", "openstack",
	// AI/机器学习
	"机器学习", "深度学习", "tensorflow", "pytorch", "keras", "scikit-learn", "nlp", "自然语言处理",
	"计算机视觉", "图像处理", "推荐系统",
	// 移动开发
	"android", "ios", "flutter", "react native", "objective-c",
	// 测试
	"自动化测试", "单元测试", "集成测试", "性能测试", "selenium", "junit", "pytest",
	// 运维
	"devops", "ci/cd", "jenkins", "git", "linux", "shell", "ansible", "puppet", "chef",
	// 项目管理
	"敏捷开发", "scrum", "项目管理", "pmp", "prince2",
	// 办公软件
	"office", "word", "excel", "powerpoint", "visio", "project",
	// 设计
	"photoshop", "illustrator", "sketch", "figma", "ui设计", "ux设计",
	// 通用技能
	"沟通能力", "团队协作", "问题解决", "时间管理", "领导力", "创新思维", "分析能力", "批判性思维",
	"英语", "日语", "法语", "德语", "西班牙语",
	// 金融
	"财务分析", "风险管理", "投资分析", "会计", "审计", "税务", "cpa", "cfa", "frm",
	// 市场营销
	"市场分析", "品牌管理", "数字营销", "内容营销", "seo", "sem", "社交媒体营销",
	// 人力资源
	"招聘", "培训", "绩效管理", "薪酬福利", "员工关系", "人才发展",
	// 销售
	"客户关系管理", "销售策略", "谈判技巧", "客户开发", "销售管理",
	// 其他
	"数据分析", "报告撰写", "研究能力", "演讲能力", "谈判能力",
}

var seedTitles = []Mapping{
	{"软件工程师", []string{"编程", "软件开发", "代码审查", "调试", "单元测试"}},
	{"前端工程师", []string{"html", "css", "javascript", "前端框架", "响应式设计", "ui开发"}},
	{"后端工程师", []string{"服务器开发", "api设计", "数据库", "性能优化", "系统架构"}},
	{"全栈工程师", []string{"前端开发", "后端开发", "数据库设计", "api开发", "全栈开发"}},
	{"数据分析师", []string{"数据分析", "数据可视化", "统计分析", "报告撰写", "数据挖掘"}},
	{"数据科学家", []string{"机器学习", "统计建模", "数据挖掘", "算法设计", "预测分析"}},
	{"产品经理", []string{"产品规划", "用户需求分析", "市场分析", "产品设计", "项目管理"}},
	{"项目经理", []string{"项目管理", "团队管理", "风险管理", "资源规划", "进度控制"}},
	{"测试工程师", []string{"软件测试", "测试用例设计", "自动化测试", "性能测试", "缺陷管理"}},
	{"运维工程师", []string{"系统运维", "服务器管理", "网络配置", "安全维护", "监控系统"}},
	{"网络工程师", []string{"网络配置", "网络安全", "路由器配置", "防火墙管理", "vpn设置"}},
	{"安全工程师", []string{"网络安全", "安全审计", "漏洞分析", "安全测试", "安全策略"}},
	{"人工智能工程师", []string{"机器学习", "深度学习", "自然语言处理", "计算机视觉", "算法设计"}},
	{"区块链工程师", []string{"区块链开发", "智能合约", "分布式系统", "密码学", "web3"}},
	{"游戏开发工程师", []string{"游戏开发", "3d建模", "游戏引擎", "物理引擎", "动画设计"}},
	{"移动开发工程师", []string{"移动应用开发", "android开发", "ios开发", "跨平台开发", "移动ui设计"}},
	{"嵌入式工程师", []string{"嵌入式系统", "单片机开发", "实时操作系统", "硬件接口", "驱动开发"}},
	{"云计算工程师", []string{"云服务", "虚拟化", "容器技术", "分布式系统", "云安全"}},
	{"大数据工程师", []string{"大数据处理", "数据仓库", "数据挖掘", "分布式计算", "数据建模"}},
	{"ui设计师", []string{"用户界面设计", "交互设计", "视觉设计", "原型设计", "用户体验"}},
	{"ux设计师", []string{"用户体验设计", "用户研究", "交互设计", "信息架构", "可用性测试"}},
	{"财务分析师", []string{"财务分析", "财务报告", "预算管理", "成本控制", "投资分析"}},
	{"会计", []string{"财务会计", "成本会计", "税务会计", "审计", "财务报表"}},
	{"市场营销专员", []string{"市场策略", "品牌推广", "市场调研", "营销活动", "市场分析"}},
	{"人力资源专员", []string{"招聘", "培训发展", "绩效管理", "员工关系", "薪酬福利"}},
	{"销售代表", []string{"销售技巧", "客户开发", "谈判能力", "关系管理", "销售策略"}},
	{"客户服务代表", []string{"客户沟通", "问题解决", "服务意识", "投诉处理", "客户满意度"}},
	{"研究员", []string{"研究方法", "数据分析", "文献综述", "报告撰写", "实验设计"}},
	{"教师", []string{"教学设计", "课程开发", "教学评估", "班级管理", "教育心理学"}},
}

var seedMajors = []Mapping{
	{"计算机科学", []string{"编程", "算法", "数据结构", "操作系统", "计算机网络", "数据库系统"}},
	{"软件工程", []string{"软件开发", "软件测试", "软件设计", "需求分析", "项目管理", "软件架构"}},
	{"信息技术", []string{"网络技术", "信息系统", "数据管理", "it服务管理", "信息安全"}},
	{"电子工程", []string{"电路设计", "信号处理", "嵌入式系统", "电子元件", "控制系统"}},
	{"通信工程", []string{"通信系统", "信号处理", "无线通信", "网络协议", "移动通信"}},
	{"自动化", []string{"控制理论", "自动控制", "plc编程", "传感器技术", "机器人技术"}},
	{"机械工程", []string{"机械设计", "机械制造", "cad", "材料力学", "热力学"}},
	{"土木工程", []string{"结构设计", "建筑材料", "工程力学", "建筑设计", "工程管理"}},
	{"电气工程", []string{"电力系统", "电气控制", "高压技术", "电机学", "电力电子学"}},
	{"化学工程", []string{"化学反应", "化工设计", "化学分析", "工艺流程", "化工安全"}},
	{"材料科学", []string{"材料性能", "材料制备", "材料表征", "材料测试", "纳米材料"}},
	{"生物工程", []string{"生物技术", "基因工程", "细胞培养", "生物反应器", "生物信息学"}},
	{"环境工程", []string{"环境监测", "污染控制", "环境评估", "废物处理", "环境规划"}},
	{"数学", []string{"数学分析", "代数学", "几何学", "统计学", "运筹学"}},
	{"物理学", []string{"力学", "电磁学", "热学", "光学", "量子物理"}},
	{"化学", []string{"有机化学", "无机化学", "物理化学", "分析化学", "化学实验"}},
	{"生物学", []string{"分子生物学", "细胞生物学", "生态学", "遗传学", "生物化学"}},
	{"医学", []string{"临床医学", "基础医学", "药理学", "病理学", "解剖学"}},
	{"药学", []string{"药物化学", "药剂学", "药物分析", "临床药学", "药物设计"}},
	{"心理学", []string{"认知心理学", "发展心理学", "社会心理学", "心理测量", "心理咨询"}},
	{"经济学", []string{"微观经济学", "宏观经济学", "计量经济学", "国际经济学", "经济政策"}},
	{"金融学", []string{"金融市场", "投资学", "公司金融", "风险管理", "金融分析"}},
	{"会计学", []string{"财务会计", "管理会计", "成本会计", "审计学", "税务会计"}},
	{"管理学", []string{"组织行为学", "战略管理", "人力资源管理", "运营管理", "市场营销"}},
	{"市场营销", []string{"市场调研", "消费者行为", "品牌管理", "营销策略", "广告学"}},
	{"人力资源管理", []string{"招聘选拔", "培训发展", "绩效管理", "薪酬福利", "员工关系"}},
	{"国际贸易", []string{"国际商务", "贸易理论", "国际结算", "外贸实务", "国际市场营销"}},
	{"法学", []string{"民法", "刑法", "商法", "国际法", "宪法"}},
	{"新闻传播学", []string{"新闻学", "传播理论", "媒体研究", "广播电视", "网络传播"}},
	{"教育学", []string{"教育心理学", "课程与教学", "教育管理", "教育评价", "教育技术"}},
	{"艺术设计", []string{"视觉设计", "产品设计", "环境设计", "交互设计", "多媒体设计"}},
	{"音乐", []string{"音乐理论", "器乐演奏", "声乐", "作曲", "音乐史"}},
	{"体育", []string{"运动训练", "体育教育", "运动生理学", "体育管理", "体育心理学"}},
}

// 顺序即优先级：命中第一个即停止
var seedCompanies = []Mapping{
	{"阿里巴巴", []string{"java", "spring", "mysql", "redis", "dubbo", "分布式系统"}},
	{"腾讯", []string{"c++", "go", "mysql", "redis", "游戏开发", "社交网络"}},
	{"百度", []string{"python", "机器学习", "深度学习", "自然语言处理", "搜索引擎"}},
	{"字节跳动", []string{"go", "python", "推荐系统", "大数据", "kafka"}},
	{"华为", []string{"c++", "java", "网络技术", "5g", "云计算"}},
	{"小米", []string{"android", "java", "iot", "移动开发"}},
	{"美团", []string{"java", "spring", "mysql", "redis", "o2o"}},
	{"滴滴", []string{"go", "java", "地图服务", "实时计算"}},
	{"google", []string{"python", "go", "tensorflow", "云计算", "搜索"}},
	{"microsoft", []string{"c#", ".net", "azure", "sql server"}},
	{"amazon", []string{"aws", "java", "python", "云服务"}},
	{"facebook", []string{"react", "php", "mysql", "社交网络"}},
	{"apple", []string{"swift", "objective-c", "ios", "macos"}},
}

var seedIndustries = []KeywordRule{
	{[]string{"银行", "金融", "证券", "保险"}, []string{"金融", "风险管理", "数据分析", "sql"}},
	{[]string{"医院", "医疗", "制药"}, []string{"医疗", "生物信息学", "数据分析"}},
	{[]string{"教育", "学校", "培训"}, []string{"教学", "课程设计", "教育技术"}},
}

var seedDegrees = []KeywordRule{
	{[]string{"博士", "phd", "博士学位"}, []string{"研究能力", "学术写作", "数据分析", "项目管理"}},
	{[]string{"硕士", "master", "研究生"}, []string{"研究能力", "数据分析", "学术写作"}},
}

var seedSchools = []KeywordRule{
	{[]string{"985", "211", "清华", "北大", "复旦", "交大"}, []string{"学习能力", "分析能力", "解决问题"}},
}

var seedFallbackKeywords = []string{
	"python", "java", "javascript", "php", "c++", "c#", "go", "rust",
	"html", "css", "react", "vue", "angular", "node.js", "express",
	"django", "flask", "spring", "mysql", "postgresql", "mongodb",
	"redis", "docker", "kubernetes", "aws", "azure", "git", "linux",
	"机器学习", "深度学习", "数据分析", "人工智能", "大数据",
	"前端开发", "后端开发", "全栈开发", "移动开发", "测试",
	"项目管理", "团队协作", "沟通能力", "问题解决",
}

var seedAliases = map[string]string{
	"js":          "javascript",
	"javascripts": "javascript",
	"py":          "python",
	"java语言":      "java",
	"r":           "R语言",
	"r语言":         "R语言",
}
