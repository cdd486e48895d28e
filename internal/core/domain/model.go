package domain

// FolderReport holds per-folder counters from a normalization run.
type FolderReport struct {
	Folder    string
	Found     int
	Processed int
	Failed    int
}

// ValidationReport summarizes a reference-validation run over one table.
type ValidationReport struct {
	Path     string
	Total    int
	Existing int
	Missing  int
}

// EvalItem is one normalized text prepared for submission to the
// evaluation API.
type EvalItem struct {
	IDAlumno  string `json:"id_alumno"`
	Curso     string `json:"curso"`
	Consigna  string `json:"consigna"`
	Respuesta string `json:"respuesta"`
}

// Job identifies an evaluation batch accepted by the API.
type Job struct {
	ID            string  `json:"job_id"`
	EstimatedTime float64 `json:"estimated_time_seconds"`
}

// Health reports the evaluation API status.
type Health struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	GPUAvailable bool   `json:"gpu_available"`
}

// EvalResult is one graded text returned by the API.
type EvalResult struct {
	IDAlumno string  `json:"id_alumno"`
	Nota     float64 `json:"nota"`
	Feedback string  `json:"feedback"`
}

// ScoredText joins a graded result with the local file it came from.
type ScoredText struct {
	Folder   string
	ID       string
	Filename string
	Curso    string
	Consigna string
	Nota     float64
	Feedback string
}

// EvalReport holds per-folder counters from an evaluation run.
type EvalReport struct {
	Folder     string
	Files      int
	Submitted  int
	Scored     int
	ResultsCSV string
}
