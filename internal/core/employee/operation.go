package employee

import "time"

// Kind は OperationRequest の種別です。書き込み系の値は employee_operation の操作タグと一致します。
type Kind string

const (
	KindQueryAll               Kind = "QUERY_ALL"
	KindQueryByID              Kind = "QUERY_BY_ID"
	KindQueryByHireDate        Kind = "QUERY_BY_HIRE_DATE"
	KindQueryDistinctHireDates Kind = "QUERY_DISTINCT_HIRE_DATES"
	KindQueryBaseFields        Kind = "QUERY_BASE_FIELDS"
	KindInsert                 Kind = "INSERT"
	KindUpdate                 Kind = "UPDATE"
	KindDelete                 Kind = "DELETE"
)

// OperationRequest は Dispatcher に渡す操作要求です。
// 各バリアントはその操作に必要な項目だけを持ちます。
type OperationRequest interface {
	Kind() Kind
	isOperationRequest()
}

// QueryAll は全社員の取得要求です。
type QueryAll struct{}

// QueryByID は ID 指定での取得要求です。
type QueryByID struct {
	ID int64
}

// QueryByHireDate は入社日指定での取得要求です。
type QueryByHireDate struct {
	HireDate time.Time
}

// QueryDistinctHireDates は入社日の一覧取得要求です。
type QueryDistinctHireDates struct{}

// QueryBaseFields は縮約項目での一覧取得要求です。
type QueryBaseFields struct{}

// Insert は社員作成要求です。ID はデータベースが採番します。
type Insert struct {
	Fields Fields
}

// Update は社員の全項目更新要求です。
type Update struct {
	ID     int64
	Fields Fields
}

// Delete は社員削除要求です。
type Delete struct {
	ID int64
}

func (QueryAll) Kind() Kind               { return KindQueryAll }
func (QueryByID) Kind() Kind              { return KindQueryByID }
func (QueryByHireDate) Kind() Kind        { return KindQueryByHireDate }
func (QueryDistinctHireDates) Kind() Kind { return KindQueryDistinctHireDates }
func (QueryBaseFields) Kind() Kind        { return KindQueryBaseFields }
func (Insert) Kind() Kind                 { return KindInsert }
func (Update) Kind() Kind                 { return KindUpdate }
func (Delete) Kind() Kind                 { return KindDelete }

func (QueryAll) isOperationRequest()               {}
func (QueryByID) isOperationRequest()              {}
func (QueryByHireDate) isOperationRequest()        {}
func (QueryDistinctHireDates) isOperationRequest() {}
func (QueryBaseFields) isOperationRequest()        {}
func (Insert) isOperationRequest()                 {}
func (Update) isOperationRequest()                 {}
func (Delete) isOperationRequest()                 {}

// Result は Dispatcher の実行結果です。Kind に応じたフィールドのみが設定されます。
type Result struct {
	Kind          Kind
	Employees     []Employee
	BaseEmployees []BaseEmployee
	HireDates     []time.Time
	// ID は書き込み対象の社員 ID です。Insert では採番された ID が入ります。
	ID int64
}
