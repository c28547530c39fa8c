package httpapi

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Phishing analyzer</title>
</head>
<body>
<h1>Phishing analyzer</h1>
<form id="analyze" method="post" action="/analyze" enctype="multipart/form-data">
  <p><label>Sender <input type="email" name="sender"></label></p>
  <p><label>Subject <input type="text" name="subject"></label></p>
  <p><label>Body<br><textarea name="body" rows="12" cols="80"></textarea></label></p>
  <p><label>Attachments <input type="file" name="attachments" multiple></label></p>
  <p><button type="submit">Analyze</button></p>
</form>
<pre id="output"></pre>
<script>
document.getElementById("analyze").addEventListener("submit", async (event) => {
  event.preventDefault();
  const output = document.getElementById("output");
  output.textContent = "";
  const response = await fetch("/analyze", { method: "POST", body: new FormData(event.target) });
  const reader = response.body.getReader();
  const decoder = new TextDecoder();
  for (;;) {
    const { done, value } = await reader.read();
    if (done) break;
    output.textContent += decoder.decode(value, { stream: true });
  }
});
</script>
</body>
</html>
`
